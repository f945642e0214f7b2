package service

import (
	"time"

	"livewall-server/internal/modules/submission/repo"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/storage"
)

type Service struct {
	*platformservice.AppService
	submissionStore repo.SubmissionStore
	objectStore     storage.ObjectStore
	now             func() time.Time
}

func New(appService *platformservice.AppService, submissionStore repo.SubmissionStore, objectStore storage.ObjectStore) *Service {
	return &Service{
		AppService:      appService,
		submissionStore: submissionStore,
		objectStore:     objectStore,
		now:             time.Now,
	}
}

// SetClock 替换时间源，用于测试定时发布
func (s *Service) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}
