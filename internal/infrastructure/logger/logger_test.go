package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{Log: config.LogConfig{Level: "warn", Format: "json", Output: path}}

	l, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	log.Info().Msg("不会写入")
	log.Warn().Str("module", "test").Msg("写入文件")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module":"test"`)
	assert.NotContains(t, string(data), "不会写入")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "verbose", Format: "console", Output: "stderr"}}

	l, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
