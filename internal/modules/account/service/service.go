package service

import (
	"livewall-server/internal/modules/account/repo"
	platformservice "livewall-server/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	accountStore repo.AccountStore
}

func New(appService *platformservice.AppService, accountStore repo.AccountStore) *Service {
	return &Service{
		AppService:   appService,
		accountStore: accountStore,
	}
}
