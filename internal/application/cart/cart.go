package cart

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// CartItemDTO 购物车明细
type CartItemDTO struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
}

// ShoppingCartDTO 购物车
type ShoppingCartDTO struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	CartItems []CartItemDTO `json:"cart_items"`
}

func toShoppingCartDTO(c *cart.ShoppingCart) *ShoppingCartDTO {
	items := make([]CartItemDTO, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemDTO{
			ID:        it.ID,
			BookID:    it.BookID,
			BookTitle: it.BookTitle,
			Quantity:  it.Quantity,
		}
	}

	return &ShoppingCartDTO{
		ID:        c.ID,
		UserID:    c.UserID(),
		CartItems: items,
	}
}

// GetShoppingCartUseCase 当前用户的购物车
type GetShoppingCartUseCase struct {
	cartService cart.Service
}

func NewGetShoppingCartUseCase(cartService cart.Service) *GetShoppingCartUseCase {
	return &GetShoppingCartUseCase{cartService: cartService}
}

func (uc *GetShoppingCartUseCase) Execute(ctx context.Context, userID uint) (*ShoppingCartDTO, error) {
	c, err := uc.cartService.GetShoppingCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toShoppingCartDTO(c), nil
}

// AddItemRequest 加入购物车
type AddItemRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// AddItemUseCase 加入购物车,同一本书合并数量
type AddItemUseCase struct {
	cartService cart.Service
	bookService book.Service
	tx          application.Transactor
	metrics     *metrics.Metrics
}

func NewAddItemUseCase(
	cartService cart.Service,
	bookService book.Service,
	tx application.Transactor,
	m *metrics.Metrics,
) *AddItemUseCase {
	return &AddItemUseCase{
		cartService: cartService,
		bookService: bookService,
		tx:          tx,
		metrics:     m,
	}
}

func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*ShoppingCartDTO, error) {
	var result *cart.ShoppingCart
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookService.GetBook(txCtx, req.BookID); err != nil {
			return err
		}

		c, err := uc.cartService.AddItem(txCtx, req.UserID, req.BookID, req.Quantity)
		if err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.CartItemsAddedTotal.Inc()
	return toShoppingCartDTO(result), nil
}

// UpdateItemUseCase 覆盖明细数量
type UpdateItemUseCase struct {
	cartService cart.Service
	tx          application.Transactor
}

func NewUpdateItemUseCase(cartService cart.Service, tx application.Transactor) *UpdateItemUseCase {
	return &UpdateItemUseCase{
		cartService: cartService,
		tx:          tx,
	}
}

func (uc *UpdateItemUseCase) Execute(ctx context.Context, userID, itemID uint, quantity int) (*ShoppingCartDTO, error) {
	var result *cart.ShoppingCart
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.cartService.UpdateItem(txCtx, userID, itemID, quantity)
		if err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toShoppingCartDTO(result), nil
}

// DeleteItemUseCase 删除明细,只能删除自己购物车中的明细
type DeleteItemUseCase struct {
	cartService cart.Service
	tx          application.Transactor
}

func NewDeleteItemUseCase(cartService cart.Service, tx application.Transactor) *DeleteItemUseCase {
	return &DeleteItemUseCase{
		cartService: cartService,
		tx:          tx,
	}
}

func (uc *DeleteItemUseCase) Execute(ctx context.Context, userID, itemID uint) error {
	return uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		return uc.cartService.DeleteItem(txCtx, userID, itemID)
	})
}
