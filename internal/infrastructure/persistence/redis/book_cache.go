package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

const bookKeyPrefix = "bookstore:book:"

// BookCache 图书详情缓存(Cache-Aside)
// 查询先读缓存,未命中再查库并回填;更新和删除图书后删除缓存
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// Get 未命中时返回nil, nil
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取图书缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, fmt.Errorf("反序列化图书缓存失败: %w", err)
	}
	return &b, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化图书失败: %w", err)
	}
	if err := c.client.Set(ctx, bookKey(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置图书缓存失败: %w", err)
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return fmt.Errorf("删除图书缓存失败: %w", err)
	}
	return nil
}

func bookKey(id uint) string {
	return fmt.Sprintf("%s%d", bookKeyPrefix, id)
}
