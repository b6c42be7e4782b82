package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

const (
	sessionKeyPrefix   = "bookstore:session:"
	blacklistKeyPrefix = "bookstore:blacklist:"
)

// Session 登录会话
type Session struct {
	UserID    uint
	Email     string
	LoginAt   time.Time
	ClientIP  string
	UserAgent string
}

// SessionStore 会话存储
// session:{user_id} 记录最近一次登录
// blacklist:{token} 登出后的Access Token,过期时间与Token剩余有效期一致
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存用户会话,过期时间与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, sess *Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)

	// HSet和Expire放在同一个事务管道中
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"email":      sess.Email,
			"login_at":   sess.LoginAt.Unix(),
			"client_ip":  sess.ClientIP,
			"user_agent": sess.UserAgent,
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}
	return nil
}

// GetSession 获取用户会话,不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (*Session, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	loginAt, _ := strconv.ParseInt(result["login_at"], 10, 64)
	return &Session{
		UserID:    userID,
		Email:     result["email"],
		LoginAt:   time.Unix(loginAt, 0),
		ClientIP:  result["client_ip"],
		UserAgent: result["user_agent"],
	}, nil
}

// DeleteSession 删除用户会话(登出)
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单,ttl<=0时不写入(Token已过期)
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKeyPrefix+token, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return exists > 0, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}
