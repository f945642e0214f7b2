package service

import (
	"testing"

	"livewall-server/internal/config"
	"livewall-server/internal/modules/account/repo"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	appService := platformservice.NewAppService(config.Config{}, nil)
	return New(appService, repo.NewAccountRepository(gdb)), gdb
}
