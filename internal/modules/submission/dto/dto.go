package dto

import (
	"time"

	"livewall-server/internal/model"
	"livewall-server/internal/storage"
)

type PaginationRequest struct {
	Page     int
	PageSize int
}

// CreateSubmissionRequest 单条投稿；Photo 为空表示纯留言
type CreateSubmissionRequest struct {
	Photo        *storage.Object
	Message      string
	Username     string
	Email        string
	UploadedBy   string
	UploadSource string
}

type CreateBatchRequest struct {
	Photos     []storage.Object
	Message    string
	UploadedBy string
}

type ListSubmissionsRequest struct {
	PaginationRequest
	Status    string
	Displayed *bool
}

type SubmissionListResponse struct {
	Uploads    []model.Submission `json:"uploads"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

type TransitionRequest struct {
	Action       string     `json:"action"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type BulkTransitionRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
}
