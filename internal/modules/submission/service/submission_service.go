package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"livewall-server/internal/consts"
	"livewall-server/internal/model"
	moduledto "livewall-server/internal/modules/submission/dto"
	"livewall-server/internal/modules/submission/repo"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/storage"

	"gorm.io/gorm"
)

// Create 创建一条投稿，照片先上传到对象存储，上传失败时不落库。
func (s *Service) Create(ctx context.Context, req moduledto.CreateSubmissionRequest) (*model.Submission, error) {
	message := strings.TrimSpace(req.Message)
	if req.Photo == nil && message == "" {
		return nil, platformservice.NewValidationError("Either a photo or message (or both) must be provided")
	}

	source, ok := model.ParseUploadSource(strings.TrimSpace(req.UploadSource))
	if !ok {
		return nil, platformservice.NewValidationError("Invalid upload source")
	}

	submission := &model.Submission{
		Message:      message,
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Status:       model.SubmissionPending,
		UploadedBy:   optionalID(req.UploadedBy),
		UploadSource: source,
	}

	if req.Photo != nil {
		url, err := s.objectStore.Put(ctx, *req.Photo)
		if err != nil {
			log.Printf("❌ 投稿照片上传失败 [%s] %q: %v", uploadFailureKind(err), req.Photo.Filename, err)
			return nil, platformservice.NewUnavailableError(err)
		}
		submission.PhotoURL = url
	}

	if err := s.submissionStore.Create(ctx, submission); err != nil {
		s.discardObject(ctx, submission.PhotoURL)
		return nil, platformservice.WrapInternalError(err, "Failed to save upload")
	}

	return submission, nil
}

// CreateBatch 摄影师批量上传：逐个上传并入库，单个文件失败只记录日志并跳过。
func (s *Service) CreateBatch(ctx context.Context, req moduledto.CreateBatchRequest) ([]model.Submission, error) {
	if len(req.Photos) == 0 {
		return nil, platformservice.NewValidationError("No files provided")
	}

	message := strings.TrimSpace(req.Message)
	uploadedBy := optionalID(req.UploadedBy)
	created := make([]model.Submission, 0, len(req.Photos))

	for _, photo := range req.Photos {
		url, err := s.objectStore.Put(ctx, photo)
		if err != nil {
			log.Printf("⚠️ 批量上传跳过文件 [%s] %q: %v", uploadFailureKind(err), photo.Filename, err)
			continue
		}

		submission := model.Submission{
			PhotoURL:     url,
			Message:      message,
			Status:       model.SubmissionPending,
			UploadedBy:   uploadedBy,
			UploadSource: model.UploadSourcePhotographer,
		}
		if err := s.submissionStore.Create(ctx, &submission); err != nil {
			log.Printf("⚠️ 批量上传保存记录失败 %q: %v", photo.Filename, err)
			s.discardObject(ctx, url)
			continue
		}
		created = append(created, submission)
	}

	return created, nil
}

// List 先激活到期的定时投稿，再按筛选条件分页查询。
func (s *Service) List(ctx context.Context, req moduledto.ListSubmissionsRequest) (*moduledto.SubmissionListResponse, error) {
	if _, err := s.submissionStore.ActivateDueScheduled(ctx, s.now()); err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to fetch uploads")
	}

	page, pageSize := normalizePagination(req.Page, req.PageSize)
	params := repo.ListParams{
		Displayed: req.Displayed,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status := model.SubmissionStatus(strings.ToUpper(raw))
		params.Status = &status
	}

	submissions, total, err := s.submissionStore.List(ctx, params)
	if err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to fetch uploads")
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}

	return &moduledto.SubmissionListResponse{
		Uploads:    submissions,
		Total:      total,
		Page:       page,
		Limit:      pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Submission, error) {
	submission, err := s.submissionStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(fmt.Sprintf("Upload with ID %s not found", id))
		}
		return nil, platformservice.WrapInternalError(err, "Failed to fetch upload")
	}
	return submission, nil
}

// Transition 对单条投稿执行 approve/reject/schedule，任意状态之间均可覆盖。
func (s *Service) Transition(ctx context.Context, id string, action string, scheduledFor *time.Time) (*model.Submission, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	if !validAction(action) {
		return nil, platformservice.NewValidationError("Invalid action. Must be approve, reject, or schedule")
	}

	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case consts.ActionApprove:
		submission.Status = model.SubmissionApproved
		submission.ScheduledFor = nil
	case consts.ActionReject:
		submission.Status = model.SubmissionRejected
		submission.ScheduledFor = nil
	case consts.ActionSchedule:
		at := s.now().UTC()
		if scheduledFor != nil {
			at = scheduledFor.UTC()
		}
		submission.Status = model.SubmissionScheduled
		submission.ScheduledFor = &at
	}

	if err := s.submissionStore.Save(ctx, submission); err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to update upload")
	}
	return submission, nil
}

// BulkTransition 以一次多行更新修改状态，返回实际命中的记录数，不存在的 id 被忽略。
func (s *Service) BulkTransition(ctx context.Context, ids []string, action string) (int64, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, platformservice.NewValidationError("ids must be a non-empty array")
	}
	action = strings.ToLower(strings.TrimSpace(action))
	if !validAction(action) {
		return 0, platformservice.NewValidationError("Invalid action. Must be approve, reject, or schedule")
	}

	update := repo.StatusUpdate{}
	switch action {
	case consts.ActionApprove:
		update.Status = model.SubmissionApproved
	case consts.ActionReject:
		update.Status = model.SubmissionRejected
	case consts.ActionSchedule:
		at := s.now().UTC()
		update.Status = model.SubmissionScheduled
		update.ScheduledFor = &at
	}

	modified, err := s.submissionStore.UpdateStatusByIDs(ctx, ids, update)
	if err != nil {
		return 0, platformservice.WrapInternalError(err, "Failed to update uploads")
	}
	return modified, nil
}

// MarkDisplayed 幂等地标记投稿已上墙。
func (s *Service) MarkDisplayed(ctx context.Context, id string) (*model.Submission, error) {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Displayed {
		return submission, nil
	}

	if err := s.submissionStore.MarkDisplayed(ctx, submission.ID); err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to update upload")
	}
	return s.Get(ctx, submission.ID)
}

// Delete 删除投稿及其照片对象，对象删除失败只记录日志。
func (s *Service) Delete(ctx context.Context, id string) error {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.discardObject(ctx, submission.PhotoURL)

	if err := s.submissionStore.Delete(ctx, submission); err != nil {
		return platformservice.WrapInternalError(err, "Failed to delete upload")
	}
	return nil
}

// uploadFailureKind 取对象存储的失败分类，非分类错误归为 unknown
func uploadFailureKind(err error) storage.UploadErrorKind {
	if uploadErr, ok := storage.AsUploadError(err); ok {
		return uploadErr.Kind
	}
	return storage.UploadErrorUnknown
}

func (s *Service) discardObject(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.objectStore.Delete(ctx, url); err != nil {
		log.Printf("⚠️ 删除对象失败 %s: %v", url, err)
	}
}

func validAction(action string) bool {
	switch action {
	case consts.ActionApprove, consts.ActionReject, consts.ActionSchedule:
		return true
	default:
		return false
	}
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return page, pageSize
}

func optionalID(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
