package order

import (
	"context"
)

// Repository 订单仓储接口
// 订单与明细属于同一聚合,通过context中的事务一起写入
type Repository interface {
	// FindByID 加载订单及明细,不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByUserID 加载用户的订单及明细,不存在返回ErrOrderNotFound
	FindByUserID(ctx context.Context, userID uint) (*Order, error)

	// Save 插入或更新订单,并用order.Items替换已有明细(旧明细行被删除)
	Save(ctx context.Context, order *Order) error

	// UpdateStatus 只更新状态字段
	UpdateStatus(ctx context.Context, order *Order) error

	// List 分页查询所有订单(含明细)
	List(ctx context.Context, page, pageSize int) ([]*Order, int64, error)

	// Delete 删除订单及明细,不存在返回ErrOrderNotFound
	Delete(ctx context.Context, id uint) error
}
