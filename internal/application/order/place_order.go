package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
	"github.com/xiebiao/onlinebookstore/pkg/tracing"
)

// PlaceOrderRequest 下单
type PlaceOrderRequest struct {
	UserID          uint
	ShippingAddress string
}

// PlaceOrderUseCase 根据购物车下单
// 1. 用户只有一个订单,再次下单时明细整体替换为当前购物车
// 2. 明细价格取下单时图书的价格
// 3. 购物车保持不变
type PlaceOrderUseCase struct {
	cartService  cart.Service
	bookService  book.Service
	orderService order.Service
	tx           application.Transactor
	publisher    application.EventPublisher
	metrics      *metrics.Metrics
}

func NewPlaceOrderUseCase(
	cartService cart.Service,
	bookService book.Service,
	orderService order.Service,
	tx application.Transactor,
	publisher application.EventPublisher,
	m *metrics.Metrics,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		cartService:  cartService,
		bookService:  bookService,
		orderService: orderService,
		tx:           tx,
		publisher:    publisher,
		metrics:      m,
	}
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "order.place")
	defer span.End()

	start := time.Now()

	var placed *order.Order
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.cartService.GetShoppingCart(txCtx, req.UserID)
		if err != nil {
			return err
		}

		lines, err := uc.snapshot(txCtx, c)
		if err != nil {
			return err
		}

		o, err := uc.orderService.PlaceOrder(txCtx, req.UserID, req.ShippingAddress, lines)
		if err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	uc.metrics.OrdersPlacedTotal.Inc()
	uc.metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("order.id", int(placed.ID)),
		attribute.Int("order.items", len(placed.Items)),
	)

	uc.publisher.Publish(ctx, application.OrderPlaced{
		OrderID:    placed.ID,
		UserID:     placed.UserID,
		Total:      placed.Total,
		ItemCount:  len(placed.Items),
		OccurredAt: time.Now(),
	})

	return toOrderDTO(placed), nil
}

// snapshot 购物车明细转换为订单行,价格取图书当前价格
// 购物车中的图书已被删除时返回ErrBookNotFound
func (uc *PlaceOrderUseCase) snapshot(ctx context.Context, c *cart.ShoppingCart) ([]order.Line, error) {
	ids := make([]uint, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.BookID
	}

	books, err := uc.bookService.GetBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, len(c.Items))
	for i, it := range c.Items {
		b, ok := books[it.BookID]
		if !ok {
			return nil, book.ErrBookNotFound.WithMessage("购物车中的图书《%s》已下架", it.BookTitle)
		}
		lines[i] = order.Line{
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    b.Price,
		}
	}
	return lines, nil
}
