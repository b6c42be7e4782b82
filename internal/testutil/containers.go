//go:build integration

package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 2 * time.Minute

// StartRabbitMQ 启动RabbitMQ容器,返回amqp连接地址
func StartRabbitMQ(t *testing.T) string {
	t.Helper()

	host, port := start(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
	}, "5672")

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port)
}

// StartRedis 启动Redis容器,返回host:port
func StartRedis(t *testing.T) string {
	t.Helper()

	host, port := start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}, "6379")

	return host + ":" + port
}

// MySQL 容器连接信息
type MySQL struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// StartMySQL 启动MySQL容器
func StartMySQL(t *testing.T) MySQL {
	t.Helper()

	const password = "bookstore"
	host, port := start(t, testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": password,
			"MYSQL_DATABASE":      "bookstore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(startupTimeout),
	}, "3306")

	var p int
	_, err := fmt.Sscanf(port, "%d", &p)
	require.NoError(t, err)

	return MySQL{Host: host, Port: p, User: "root", Password: password, DBName: "bookstore"}
}

func start(t *testing.T, req testcontainers.ContainerRequest, port nat.Port) (string, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()
		_ = container.Terminate(cleanupCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	return host, mapped.Port()
}
