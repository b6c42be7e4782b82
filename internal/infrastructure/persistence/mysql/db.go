package mysql

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 连接池参数来自配置
// 2. debug模式打印SQL
// 3. TranslateError开启后,唯一索引冲突统一为gorm.ErrDuplicatedKey
// 4. 启动时执行版本化迁移;auto_migrate仅用于开发环境
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Migrate {
		if err := RunMigrations(cfg.Database.MigrateDSN()); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), gormConfig(cfg.Server.Mode))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("数据库连接成功")

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func gormConfig(mode string) *gorm.Config {
	logLevel := logger.Silent
	if mode == "debug" {
		logLevel = logger.Info
	}

	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Round(time.Microsecond)
		},
	}
}

// AutoMigrate 按GORM模型建表,并补齐角色数据
// 只会新增表和字段,不会删除或修改已有字段
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}
	if err := createLiveISBNIndex(db); err != nil {
		return fmt.Errorf("创建ISBN唯一索引失败: %w", err)
	}
	return seedRoles(db)
}

// createLiveISBNIndex ISBN只在未删除的图书中唯一,与000002迁移脚本一致
// SQLite使用部分索引;MySQL不支持部分索引,改为在生成列上建唯一索引(NULL不参与唯一约束)
func createLiveISBNIndex(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_books_isbn_live ON books (isbn) WHERE deleted_at IS NULL").Error
	}

	if db.Migrator().HasColumn(&BookModel{}, "isbn_live") {
		return nil
	}
	return db.Exec("ALTER TABLE books " +
		"ADD COLUMN isbn_live VARCHAR(13) AS (IF(deleted_at IS NULL, isbn, NULL)) VIRTUAL, " +
		"ADD UNIQUE KEY idx_books_isbn_live (isbn_live)").Error
}

func seedRoles(db *gorm.DB) error {
	for _, name := range []string{"USER", "ADMIN"} {
		role := RoleModel{Name: name}
		if err := db.Where(RoleModel{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("初始化角色%s失败: %w", name, err)
		}
	}
	return nil
}
