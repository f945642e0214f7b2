package repo

import (
	"context"
	"time"

	"livewall-server/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionStore {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *SubmissionRepository) Save(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) List(ctx context.Context, params ListParams) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Submission{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Displayed != nil {
		query = query.Where("displayed = ?", *params.Displayed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Order("id desc").
		Offset(params.Offset).Limit(params.Limit).Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *SubmissionRepository) UpdateStatusByIDs(ctx context.Context, ids []string, update StatusUpdate) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&model.Submission{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":        update.Status,
			"scheduled_for": update.ScheduledFor,
		})
	return result.RowsAffected, result.Error
}

// ActivateDueScheduled 将到期的定时投稿转为已通过并清空定时时间
func (r *SubmissionRepository) ActivateDueScheduled(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("status = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?", model.SubmissionScheduled, now.UTC()).
		Updates(map[string]interface{}{
			"status":        model.SubmissionApproved,
			"scheduled_for": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *SubmissionRepository) MarkDisplayed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Submission{}).Where("id = ?", id).
		Update("displayed", true).Error
}

func (r *SubmissionRepository) Delete(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Delete(submission).Error
}
