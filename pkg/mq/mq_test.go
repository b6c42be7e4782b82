//go:build integration

package mq

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/testutil"
)

type testOrderEvent struct {
	OrderID uint   `json:"order_id"`
	Action  string `json:"action"`
}

func TestPubSub(t *testing.T) {
	url := testutil.StartRabbitMQ(t)

	publisher, err := NewPublisher(url, "bookstore.test.events", ExchangeTopic)
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := NewConsumer(url, "bookstore.test.events", ExchangeTopic, "test.order.queue", []string{"order.*"})
	require.NoError(t, err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var (
		mu       sync.Mutex
		received []string
	)
	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(ctx, func(routingKey string, body []byte) error {
			var event testOrderEvent
			if err := json.Unmarshal(body, &event); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			received = append(received, routingKey+":"+event.Action)
			if len(received) == 2 {
				cancel()
			}
			return nil
		})
	}()

	require.NoError(t, publisher.Publish(ctx, "order.placed", testOrderEvent{OrderID: 1, Action: "placed"}))
	require.NoError(t, publisher.Publish(ctx, "user.registered", testOrderEvent{OrderID: 2, Action: "ignored"}))
	require.NoError(t, publisher.Publish(ctx, "order.updated", testOrderEvent{OrderID: 1, Action: "updated"}))

	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"order.placed:placed", "order.updated:updated"}, received, "只收到order.*的消息")
}
