package testutils

import (
	"path/filepath"
	"testing"

	"livewall-server/internal/config"
	"livewall-server/internal/db"

	"gorm.io/gorm"
)

// SetupDB 为每个测试打开独立的 SQLite 文件库并完成迁移。
// 走与生产相同的 db.Open 路径（WAL、单连接、UTC 时间戳）。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "livewall_test.db")
	gdb, err := db.Open(config.DatabaseConfig{Type: "sqlite", Filename: filename})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("获取 sql.DB 失败: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return gdb
}
