package application

import (
	"time"

	"github.com/shopspring/decimal"
)

// 事件路由键
const (
	RoutingKeyUserRegistered = "user.registered"
	RoutingKeyOrderPlaced    = "order.placed"
)

// Event 领域事件,以JSON发布到Topic Exchange
type Event interface {
	RoutingKey() string
}

// UserRegistered 用户注册成功
type UserRegistered struct {
	UserID     uint      `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (UserRegistered) RoutingKey() string { return RoutingKeyUserRegistered }

// OrderPlaced 下单成功(包括覆盖已有订单)
type OrderPlaced struct {
	OrderID    uint            `json:"order_id"`
	UserID     uint            `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (OrderPlaced) RoutingKey() string { return RoutingKeyOrderPlaced }
