// Package testutil 测试辅助
//
// 单元测试使用SQLite文件库;带integration标签的测试通过testcontainers启动MySQL、Redis和RabbitMQ。
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
)

// NewSQLiteDB 每个测试一个独立的SQLite库,表结构与角色数据由mysql.AutoMigrate初始化
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookstore.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
