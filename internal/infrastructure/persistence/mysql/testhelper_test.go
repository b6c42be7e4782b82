package mysql

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
)

// newTestDB 每个测试一个独立的SQLite文件库,表结构由AutoMigrate创建
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookstore.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustCreateCategory(t *testing.T, repo category.Repository, name string) *category.Category {
	t.Helper()
	c := category.NewCategory(name, name+" books")
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func mustCreateBook(t *testing.T, repo book.Repository, title, author, isbn, price string, categoryIDs ...uint) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, author, isbn, decimal.RequireFromString(price), title+" description", isbn+".png", categoryIDs)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}
