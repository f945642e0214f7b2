package repo

import (
	"context"
	"time"

	"livewall-server/internal/model"
)

// ListParams 投稿列表的类型化筛选条件
type ListParams struct {
	Status    *model.SubmissionStatus
	Displayed *bool
	Offset    int
	Limit     int
}

// StatusUpdate 批量状态更新的目标值，ScheduledFor 为 nil 时清空定时时间
type StatusUpdate struct {
	Status       model.SubmissionStatus
	ScheduledFor *time.Time
}

type SubmissionStore interface {
	Create(ctx context.Context, submission *model.Submission) error
	Save(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, params ListParams) ([]model.Submission, int64, error)
	UpdateStatusByIDs(ctx context.Context, ids []string, update StatusUpdate) (int64, error)
	ActivateDueScheduled(ctx context.Context, now time.Time) (int64, error)
	MarkDisplayed(ctx context.Context, id string) error
	Delete(ctx context.Context, submission *model.Submission) error
}
