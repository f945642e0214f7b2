package account

import (
	"livewall-server/internal/modules/account/handler"
	"livewall-server/internal/modules/account/repo"
	"livewall-server/internal/modules/account/service"
	platformservice "livewall-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func NewService(appService *platformservice.AppService, accountStore repo.AccountStore) *service.Service {
	return service.New(appService, accountStore)
}

func New(moduleService *service.Service) *Module {
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
