package submission

import (
	"livewall-server/internal/modules/submission/handler"
	"livewall-server/internal/modules/submission/repo"
	"livewall-server/internal/modules/submission/service"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func NewService(appService *platformservice.AppService, submissionStore repo.SubmissionStore, objectStore storage.ObjectStore) *service.Service {
	return service.New(appService, submissionStore, objectStore)
}

func New(moduleService *service.Service) *Module {
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
