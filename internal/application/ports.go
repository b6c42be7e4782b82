// Package application 用例层公共的端口定义
//
// 具体用例按聚合分包(book、category、cart、order、user),
// 这里只放跨用例共享的依赖:事务边界、事件发布、缓存和会话存储。
package application

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks . EventPublisher,BookCache,SessionStore

import (
	"context"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
)

// Transactor 事务边界,fn收到的ctx携带事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事务提交后发布领域事件
// 发布失败只记录日志,不影响已提交的业务
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// BookCache 图书详情缓存,未命中返回nil, nil
type BookCache interface {
	Get(ctx context.Context, id uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}

// SessionStore 登录会话与Token黑名单
type SessionStore interface {
	SaveSession(ctx context.Context, sess *redis.Session, ttl time.Duration) error
	// GetSession 会话不存在返回ErrUnauthorized
	GetSession(ctx context.Context, userID uint) (*redis.Session, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}
