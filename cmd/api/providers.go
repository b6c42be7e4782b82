package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/application"
	appcategory "github.com/xiebiao/onlinebookstore/internal/application/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
	"github.com/xiebiao/onlinebookstore/pkg/mq"
)

// App 应用入口持有的对象
type App struct {
	Server *http.Server
}

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideEventPublisher 未启用消息队列时事件只写日志
func provideEventPublisher(cfg *config.Config, m *metrics.Metrics) (application.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info().Msg("消息队列未启用,领域事件不发布")
		return messaging.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("关闭消息发布者失败")
		}
	}
	return messaging.NewEventPublisher(publisher, m), cleanup, nil
}

func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Cache.BookTTL)
}

func provideCategoryCache(cfg *config.Config) (*appcategory.Cache, error) {
	return appcategory.NewCache(cfg.Cache.CategoryCacheSize)
}

func provideUserService(repo user.Repository, cfg *config.Config) user.Service {
	return user.NewService(repo, cfg.Security.BcryptCost)
}

func provideBookService(repo book.Repository) book.Service {
	registry := book.NewProviderRegistry(book.DefaultProviders()...)
	return book.NewService(repo, book.NewSpecificationBuilder(registry))
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
