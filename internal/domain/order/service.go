package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Line 下单时购物车中的一行及图书当前价格
type Line struct {
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Service 订单领域服务
type Service interface {
	// PlaceOrder 查找或创建用户订单,明细整体替换为lines,重算总额
	// 需要在事务中调用
	PlaceOrder(ctx context.Context, userID uint, shippingAddress string, lines []Line) (*Order, error)

	// UpdateStatus 非法状态返回ErrInvalidStatus,用户没有订单返回ErrOrderNotFound
	UpdateStatus(ctx context.Context, userID uint, status string) (*Order, error)

	// FindItems 订单必须属于该用户
	FindItems(ctx context.Context, userID, orderID uint) ([]*OrderItem, error)

	// FindItem 明细所属订单必须属于该用户
	FindItem(ctx context.Context, userID, orderID, itemID uint) (*OrderItem, error)

	ListOrders(ctx context.Context, page, pageSize int) ([]*Order, int64, error)
	DeleteOrder(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建订单领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, userID uint, shippingAddress string, lines []Line) (*Order, error) {
	o, err := s.repo.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		o = NewOrder(userID, shippingAddress)
	case err != nil:
		return nil, err
	}

	items := make([]*OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &OrderItem{
			BookID:   l.BookID,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}

	o.ShippingAddress = shippingAddress
	o.ReplaceItems(items)

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID uint, status string) (*Order, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	o.UpdateStatus(st)
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) FindItems(ctx context.Context, userID, orderID uint) ([]*OrderItem, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

func (s *service) FindItem(ctx context.Context, userID, orderID, itemID uint) (*OrderItem, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	item := o.FindItem(itemID)
	if item == nil {
		return nil, ErrOrderItemNotFound
	}
	return item, nil
}

func (s *service) ListOrders(ctx context.Context, page, pageSize int) ([]*Order, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *service) DeleteOrder(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// findOwned 订单属于其他用户时同样返回ErrOrderNotFound,不暴露订单是否存在
func (s *service) findOwned(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
