package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"livewall-server/internal/common/httpx"
	"livewall-server/internal/consts"
	moduledto "livewall-server/internal/modules/submission/dto"

	"github.com/gin-gonic/gin"
)

type createUploadJSON struct {
	Message      string `json:"message"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	UploadedBy   string `json:"uploadedBy"`
	UploadSource string `json:"uploadSource"`
}

// CreateUpload 公开投稿：multipart 表单（photo + 文本字段），纯留言也可提交 JSON
func (h *Handler) CreateUpload(c *gin.Context) {
	var req moduledto.CreateSubmissionRequest
	photos := &openedPhotos{}
	defer photos.Close()

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body createUploadJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			if !bodyTooLarge(c, err) {
				httpx.WriteBadRequest(c, "Invalid request body")
			}
			return
		}
		req = moduledto.CreateSubmissionRequest{
			Message:      body.Message,
			Username:     body.Username,
			Email:        body.Email,
			UploadedBy:   body.UploadedBy,
			UploadSource: body.UploadSource,
		}
	} else {
		if fh, err := c.FormFile("photo"); err == nil {
			photo, msg := photos.openPhoto(fh, h.submissionService.Config().Upload)
			if photo == nil {
				httpx.WriteBadRequest(c, msg)
				return
			}
			req.Photo = photo
		} else if bodyTooLarge(c, err) {
			return
		} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			httpx.WriteBadRequest(c, "Invalid multipart form")
			return
		}
		req.Message = c.PostForm("message")
		req.Username = c.PostForm("username")
		req.Email = c.PostForm("email")
		req.UploadedBy = c.PostForm("uploadedBy")
		req.UploadSource = c.PostForm("uploadSource")
	}

	submission, err := h.submissionService.Create(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to create upload")
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// CreateBatchUpload 摄影师批量上传（photos 字段，最多 upload.max_batch_files 个）
func (h *Handler) CreateBatchUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		if !bodyTooLarge(c, err) {
			httpx.WriteBadRequest(c, "No files provided")
		}
		return
	}

	limits := h.submissionService.Config().Upload
	headers := form.File["photos"]
	if len(headers) > limits.BatchLimit() {
		httpx.WriteBadRequest(c, "Too many files. Maximum is "+strconv.Itoa(limits.BatchLimit()))
		return
	}

	photos := &openedPhotos{}
	defer photos.Close()

	req := moduledto.CreateBatchRequest{
		Message:    c.PostForm("message"),
		UploadedBy: c.PostForm("uploadedBy"),
	}
	for _, fh := range headers {
		photo, msg := photos.openPhoto(fh, limits)
		if photo == nil {
			httpx.WriteBadRequest(c, msg)
			return
		}
		req.Photos = append(req.Photos, *photo)
	}

	submissions, err := h.submissionService.CreateBatch(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to upload files")
		return
	}
	c.JSON(http.StatusCreated, submissions)
}

// ListUploads 分页查询投稿，同时触发到期定时投稿的发布
func (h *Handler) ListUploads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(consts.DefaultPageSize)))

	result, err := h.submissionService.List(c.Request.Context(), moduledto.ListSubmissionsRequest{
		PaginationRequest: moduledto.PaginationRequest{Page: page, PageSize: limit},
		Status:            c.Query("status"),
		Displayed:         parseDisplayedFilter(c.Query("displayed")),
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch uploads")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetUpload(c *gin.Context) {
	submission, err := h.submissionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch upload")
		return
	}
	c.JSON(http.StatusOK, submission)
}

// UpdateUploadStatus 审核单条投稿
func (h *Handler) UpdateUploadStatus(c *gin.Context) {
	var req moduledto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.Transition(c.Request.Context(), c.Param("id"), req.Action, req.ScheduledFor)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update upload")
		return
	}
	c.JSON(http.StatusOK, submission)
}

// BulkUpdateUploadStatus 批量审核
func (h *Handler) BulkUpdateUploadStatus(c *gin.Context) {
	var req moduledto.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "ids must be a non-empty array")
		return
	}

	modified, err := h.submissionService.BulkTransition(c.Request.Context(), req.IDs, req.Action)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update uploads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *Handler) MarkUploadDisplayed(c *gin.Context) {
	submission, err := h.submissionService.MarkDisplayed(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to mark upload as displayed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": submission.ID, "displayed": submission.Displayed})
}

func (h *Handler) DeleteUpload(c *gin.Context) {
	if err := h.submissionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload deleted successfully"})
}

func parseDisplayedFilter(raw string) *bool {
	var displayed bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case consts.DisplayedFilterDisplayed, "true":
		displayed = true
	case consts.DisplayedFilterNotDisplayed, "false":
		displayed = false
	default:
		return nil
	}
	return &displayed
}
