// Package messaging 领域事件发布
package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/pkg/circuitbreaker"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

const (
	breakerName    = "mq-publisher"
	publishTimeout = 2 * time.Second
)

// 发布结果标签
const (
	resultSuccess  = "success"
	resultFailure  = "failure"
	resultRejected = "rejected"
)

// Publisher 消息发布,*mq.Publisher实现该接口
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 通过熔断器发布事件
// 连续失败后熔断,消息代理故障期间请求不再等待发布超时
type EventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	metrics   *metrics.Metrics
}

// NewEventPublisher 创建事件发布者
func NewEventPublisher(publisher Publisher, m *metrics.Metrics) *EventPublisher {
	breaker := circuitbreaker.New(breakerName, circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			m.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("熔断器状态变化")
		},
	})
	m.CircuitBreakerState.WithLabelValues(breakerName).Set(float64(circuitbreaker.StateClosed))

	return &EventPublisher{
		publisher: publisher,
		breaker:   breaker,
		metrics:   m,
	}
}

// Publish 同步发布,失败只记录日志
// 使用脱离请求取消的ctx,请求结束不会中断已提交业务的事件
func (p *EventPublisher) Publish(ctx context.Context, event application.Event) {
	key := event.RoutingKey()

	err := p.breaker.Execute(func() error {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		return p.publisher.Publish(pubCtx, key, event)
	})

	result := resultSuccess
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = resultRejected
	case err != nil:
		result = resultFailure
	}
	p.metrics.CircuitBreakerRequests.WithLabelValues(breakerName, result).Inc()
	p.metrics.MessagesPublishedTotal.WithLabelValues(key, result).Inc()

	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("routing_key", key).Str("result", result).Msg("事件发布失败")
	}
}

// NoopPublisher 未启用消息队列时使用,只记录日志
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event application.Event) {
	log.Ctx(ctx).Debug().Str("routing_key", event.RoutingKey()).Msg("消息队列未启用,跳过事件发布")
}
