package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "bob@example.com", []string{"USER", "ADMIN"})
	require.NoError(t, err)
	assert.EqualValues(t, 3600, pair.ExpiresIn)

	t.Run("Access Token可以解析出用户与角色", func(t *testing.T) {
		claims, err := m.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "bob@example.com", claims.Email)
		assert.ElementsMatch(t, []string{"USER", "ADMIN"}, claims.Roles)
		assert.Equal(t, "7", claims.Subject)
	})

	t.Run("Refresh Token不能当作Access Token使用", func(t *testing.T) {
		_, err := m.ParseAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Refresh Token换取新的Access Token", func(t *testing.T) {
		access, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)

		claims, err := m.ParseAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.ElementsMatch(t, []string{"USER", "ADMIN"}, claims.Roles)
	})

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		_, err := m.RefreshAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestManager_ParseToken_Invalid(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	t.Run("签名不匹配", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, time.Hour)
		pair, err := other.GenerateToken(1, "a@b.com", nil)
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute, time.Hour)
		pair, err := expired.GenerateToken(1, "a@b.com", nil)
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
