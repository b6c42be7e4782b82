package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

// New 根据配置创建zerolog.Logger,并替换全局log.Logger
// 未绑定到context的日志(log.Ctx)回落到该Logger
func New(cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out, err := writer(cfg.Log)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Log.EnableCaller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()

	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l, nil
}

func writer(cfg config.LogConfig) (io.Writer, error) {
	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		out = f
	}

	if cfg.Format == "console" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}, nil
	}
	return out, nil
}
