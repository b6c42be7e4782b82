package cart

import (
	"context"
)

// Service 购物车领域服务
// 当前用户通过userID显式传入;修改类方法需在事务中调用(购物车行被锁定)
type Service interface {
	CreateShoppingCartForUser(ctx context.Context, userID uint) error
	GetShoppingCart(ctx context.Context, userID uint) (*ShoppingCart, error)

	// AddItem 按书合并数量,图书存在性由调用方校验
	AddItem(ctx context.Context, userID, bookID uint, quantity int) (*ShoppingCart, error)

	// UpdateItem 覆盖数量,明细不属于该用户返回ErrCartItemNotFound
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*ShoppingCart, error)

	// DeleteItem 明细不属于该用户返回ErrCartItemNotFound
	DeleteItem(ctx context.Context, userID, itemID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建购物车领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateShoppingCartForUser(ctx context.Context, userID uint) error {
	return s.repo.Create(ctx, NewShoppingCart(userID))
}

func (s *service) GetShoppingCart(ctx context.Context, userID uint) (*ShoppingCart, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*ShoppingCart, error) {
	c, err := s.repo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := c.AddItem(bookID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	// 重新加载,补齐新明细的ID和书名
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*ShoppingCart, error) {
	c, err := s.repo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := c.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteItem(ctx context.Context, userID, itemID uint) error {
	c, err := s.repo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.RemoveItem(itemID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, c.ID, itemID)
}
