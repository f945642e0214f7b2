//go:build wireinject
// +build wireinject

package di

import (
	"livewall-server/internal/config"
	"livewall-server/internal/modules"
	accountrepo "livewall-server/internal/modules/account/repo"
	submissionrepo "livewall-server/internal/modules/submission/repo"
	"livewall-server/internal/platform/service"
	"livewall-server/internal/router"
	"livewall-server/internal/storage"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, cfg config.Config, redisClient *redis.Client, objectStore storage.ObjectStore) (*Application, error) {
	wire.Build(
		submissionrepo.NewSubmissionRepository,
		accountrepo.NewAccountRepository,
		service.NewAppService,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
