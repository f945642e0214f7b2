package service

import (
	"bytes"
	"testing"

	"livewall-server/internal/config"
	"livewall-server/internal/modules/submission/repo"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/storage"
	"livewall-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *testutils.MemoryObjectStore, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	objects := testutils.NewMemoryObjectStore()
	appService := platformservice.NewAppService(config.Config{}, nil)
	return New(appService, repo.NewSubmissionRepository(gdb), objects), objects, gdb
}

func pngObject(filename string) storage.Object {
	data := testutils.MinimalPNG()
	return storage.Object{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: "image/png",
		Filename:    filename,
	}
}
