// Package metrics Prometheus指标
//
// 指标注册到传入的Registerer上,测试时可以使用独立的Registry。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Cache结果标签
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics 应用指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal      *prometheus.CounterVec   // method, path, status
	HTTPRequestDuration    *prometheus.HistogramVec // method, path
	HTTPRequestsInProgress prometheus.Gauge

	// 业务
	UsersRegisteredTotal   prometheus.Counter
	BooksCreatedTotal      prometheus.Counter
	CartItemsAddedTotal    prometheus.Counter
	OrdersPlacedTotal      prometheus.Counter
	OrderPlacementDuration prometheus.Histogram
	CacheRequestsTotal     *prometheus.CounterVec // cache, result

	// 熔断器 0=CLOSED 1=OPEN 2=HALF_OPEN
	CircuitBreakerState    *prometheus.GaugeVec   // name
	CircuitBreakerRequests *prometheus.CounterVec // name, result

	// 消息
	MessagesPublishedTotal *prometheus.CounterVec // routing_key, result
}

// New 创建指标并注册到新的Registry,同时注册Go运行时和进程指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := newMetrics(reg)
	m.registry = reg
	return m
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "path"}),

		HTTPRequestsInProgress: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		}),

		UsersRegisteredTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "注册用户总数",
		}),

		BooksCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_created_total",
			Help:      "新增图书总数",
		}),

		CartItemsAddedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "加入购物车次数",
		}),

		OrdersPlacedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "下单总数",
		}),

		OrderPlacementDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_placement_duration_seconds",
			Help:      "下单耗时(秒)",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		CacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "缓存查询次数",
		}, []string{"cache", "result"}),

		CircuitBreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		}, []string{"name"}),

		CircuitBreakerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "熔断器请求总数",
		}, []string{"name", "result"}),

		MessagesPublishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "消息发布总数",
		}, []string{"routing_key", "result"}),
	}
}

// Handler /metrics处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCache 记录一次缓存查询
func (m *Metrics) ObserveCache(cache string, hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	m.CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}
