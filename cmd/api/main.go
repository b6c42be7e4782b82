package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	_ "github.com/xiebiao/onlinebookstore/docs"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/logger"
	"github.com/xiebiao/onlinebookstore/pkg/tracing"
)

// @title                      Online Bookstore API
// @version                    1.0
// @description                在线书店:图书、分类、购物车、订单与用户认证
// @host                       localhost:8080
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                格式: Bearer {access_token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	l, err := logger.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("初始化链路追踪失败")
	}

	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("初始化应用失败")
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		l.Info().Str("addr", app.Server.Addr).Str("mode", cfg.Server.Mode).Msg("HTTP服务启动")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		l.Info().Msg("开始优雅关闭")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return app.Server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		l.Error().Err(err).Msg("服务异常退出")
	}

	cleanup()

	tracerCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracer(tracerCtx); err != nil {
		l.Warn().Err(err).Msg("关闭链路追踪失败")
	}
	l.Info().Msg("服务已停止")
}
