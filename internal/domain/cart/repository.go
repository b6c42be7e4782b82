package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// Create 创建空购物车
	Create(ctx context.Context, cart *ShoppingCart) error

	// FindByUserID 加载购物车及明细(含书名),不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// FindByUserIDForUpdate 同FindByUserID,并对购物车行加排他锁(SELECT ... FOR UPDATE)
	// 必须在事务中调用
	FindByUserIDForUpdate(ctx context.Context, userID uint) (*ShoppingCart, error)

	// SaveItem ID为0时插入,否则更新数量
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem 删除明细,限定在指定购物车内,不存在返回ErrCartItemNotFound
	DeleteItem(ctx context.Context, cartID, itemID uint) error
}
