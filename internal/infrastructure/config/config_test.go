package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  mode: test
database:
  host: db
  user: root
  password: secret
  dbname: bookstore
jwt:
  secret: test-secret
  access_token_expire: 30m
mq:
  enabled: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpire)

	t.Run("未配置的键使用默认值", func(t *testing.T) {
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpire)
		assert.Equal(t, 10*time.Minute, cfg.Cache.BookTTL)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("DSN", func(t *testing.T) {
		assert.Equal(t, "root:secret@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Local", cfg.Database.DSN())
		assert.Contains(t, cfg.Database.MigrateDSN(), "multiStatements=true")
	})
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKSTORE_SERVER_PORT", "7070")

	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"缺少JWT密钥", "server:\n  port: 8080\n"},
		{"端口非法", "server:\n  port: 70000\njwt:\n  secret: s\n"},
		{"启用MQ但没有URL", "jwt:\n  secret: s\nmq:\n  enabled: true\n"},
		{"生产环境使用默认密钥", "server:\n  mode: release\njwt:\n  secret: your-secret-key-change-in-production\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
