//go:build integration

package redis

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/testutil"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	host, port, err := net.SplitHostPort(testutil.StartRedis(t))
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	return &config.Config{Redis: config.RedisConfig{
		Host:         host,
		Port:         p,
		PoolSize:     5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}}
}

func TestSessionStore(t *testing.T) {
	client, err := NewClient(newTestConfig(t))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	store := NewSessionStore(client)

	loginAt := time.Now().Truncate(time.Second)
	require.NoError(t, store.SaveSession(ctx, &Session{
		UserID:    7,
		Email:     "alice@example.com",
		LoginAt:   loginAt,
		ClientIP:  "10.0.0.1",
		UserAgent: "curl/8.0",
	}, time.Minute))

	t.Run("读取会话", func(t *testing.T) {
		sess, err := store.GetSession(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", sess.Email)
		assert.True(t, loginAt.Equal(sess.LoginAt))

		ttl, err := client.TTL(ctx, sessionKey(7)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("删除会话", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, 7))
		_, err := store.GetSession(ctx, 7)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))
		require.NoError(t, store.AddToBlacklist(ctx, "token-expired", 0))

		ok, err := store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.IsInBlacklist(ctx, "token-expired")
		require.NoError(t, err)
		assert.False(t, ok, "已过期的Token不写入")
	})
}

func TestBookCache(t *testing.T) {
	client, err := NewClient(newTestConfig(t))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	cache := NewBookCache(client, time.Minute)

	b, err := book.NewBook("Effective Java", "Joshua Bloch", "9780134685991", decimal.RequireFromString("45.50"), "", "", []uint{1, 2})
	require.NoError(t, err)
	b.ID = 3

	got, err := cache.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "未命中返回nil")

	require.NoError(t, cache.Set(ctx, b))

	got, err = cache.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Effective Java", got.Title)
	assert.True(t, b.Price.Equal(got.Price))
	assert.Equal(t, []uint{1, 2}, got.CategoryIDs)

	require.NoError(t, cache.Delete(ctx, b.ID))
	got, err = cache.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
