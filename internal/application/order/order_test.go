package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/application/mocks"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/onlinebookstore/internal/testutil"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

type fixture struct {
	bookRepo     book.Repository
	bookService  book.Service
	cartService  cart.Service
	orderService order.Service
	publisher    *mocks.MockEventPublisher
	place        *PlaceOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	db := testutil.NewSQLiteDB(t)
	bookRepo := mysql.NewBookRepository(db)

	f := &fixture{
		bookRepo:     bookRepo,
		bookService:  book.NewService(bookRepo, book.NewSpecificationBuilder(book.NewProviderRegistry(book.DefaultProviders()...))),
		cartService:  cart.NewService(mysql.NewCartRepository(db)),
		orderService: order.NewService(mysql.NewOrderRepository(db)),
		publisher:    mocks.NewMockEventPublisher(ctrl),
	}
	f.place = NewPlaceOrderUseCase(f.cartService, f.bookService, f.orderService, mysql.NewTxManager(db), f.publisher, metrics.New())
	return f
}

func (f *fixture) createBook(t *testing.T, n int, price string) *book.Book {
	t.Helper()
	b, err := book.NewBook(fmt.Sprintf("Book %d", n), "Author", fmt.Sprintf("97800000000%02d", n), decimal.RequireFromString(price), "", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.bookRepo.Create(context.Background(), b))
	return b
}

func (f *fixture) addToCart(t *testing.T, userID, bookID uint, quantity int) {
	t.Helper()
	_, err := f.cartService.AddItem(context.Background(), userID, bookID, quantity)
	require.NoError(t, err)
}

func TestPlaceOrderUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("价格快照与总价", func(t *testing.T) {
		f := newFixture(t)
		b1 := f.createBook(t, 1, "10.50")
		b2 := f.createBook(t, 2, "3")
		require.NoError(t, f.cartService.CreateShoppingCartForUser(ctx, 1))
		f.addToCart(t, 1, b1.ID, 2)
		f.addToCart(t, 1, b2.ID, 1)

		var published application.OrderPlaced
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(application.OrderPlaced{})).
			Do(func(_ context.Context, e application.Event) { published = e.(application.OrderPlaced) })

		got, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "Main St 1"})
		require.NoError(t, err)

		assert.Equal(t, uint(1), got.ID, "订单ID等于用户ID")
		assert.Equal(t, "PENDING", got.Status)
		assert.Equal(t, "Main St 1", got.ShippingAddress)
		assert.True(t, decimal.NewFromInt(24).Equal(got.Total), "got %s", got.Total)
		assert.Equal(t, "24.00", got.TotalDisplay)
		assert.NotEmpty(t, got.OrderDate)
		require.Len(t, got.OrderItems, 2)
		assert.True(t, decimal.RequireFromString("10.5").Equal(got.OrderItems[0].Price))

		assert.Equal(t, uint(1), published.OrderID)
		assert.Equal(t, 2, published.ItemCount)
		assert.True(t, decimal.NewFromInt(24).Equal(published.Total))

		// 改价不影响已下单的价格
		require.NoError(t, b1.Replace(b1.Title, b1.Author, b1.ISBN, decimal.NewFromInt(99), "", "", nil))
		require.NoError(t, f.bookService.UpdateBook(ctx, b1))

		items, err := NewGetOrderItemsUseCase(f.orderService).Execute(ctx, 1, 1)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10.5").Equal(items[0].Price))

		c, err := f.cartService.GetShoppingCart(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, c.Items, 2, "下单后购物车不变")
	})

	t.Run("再次下单整体替换明细", func(t *testing.T) {
		f := newFixture(t)
		b1 := f.createBook(t, 1, "10")
		b2 := f.createBook(t, 2, "20")
		require.NoError(t, f.cartService.CreateShoppingCartForUser(ctx, 1))
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

		f.addToCart(t, 1, b1.ID, 1)
		_, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "A"})
		require.NoError(t, err)

		c, err := f.cartService.GetShoppingCart(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, f.cartService.DeleteItem(ctx, 1, c.Items[0].ID))
		f.addToCart(t, 1, b2.ID, 3)

		got, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "B"})
		require.NoError(t, err)
		require.Len(t, got.OrderItems, 1)
		assert.Equal(t, b2.ID, got.OrderItems[0].BookID)
		assert.Equal(t, "B", got.ShippingAddress)
		assert.True(t, decimal.NewFromInt(60).Equal(got.Total))

		list, err := NewListOrdersUseCase(f.orderService).Execute(ctx, 0, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 20, list.PageSize)
	})

	t.Run("空购物车下单总价为0", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.cartService.CreateShoppingCartForUser(ctx, 1))
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		got, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "A"})
		require.NoError(t, err)
		assert.Empty(t, got.OrderItems)
		assert.True(t, got.Total.IsZero())
	})

	t.Run("没有购物车", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 9, ShippingAddress: "A"})
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	t.Run("购物车中的图书已删除", func(t *testing.T) {
		f := newFixture(t)
		b := f.createBook(t, 1, "10")
		require.NoError(t, f.cartService.CreateShoppingCartForUser(ctx, 1))
		f.addToCart(t, 1, b.ID, 1)
		require.NoError(t, f.bookService.DeleteBook(ctx, b.ID))

		_, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "A"})
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		_, total, err := f.orderService.ListOrders(ctx, 1, 10)
		require.NoError(t, err)
		assert.Zero(t, total, "事务回滚,没有生成订单")
	})
}

func TestManageOrderUseCases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.createBook(t, 1, "10")
	require.NoError(t, f.cartService.CreateShoppingCartForUser(ctx, 1))
	f.addToCart(t, 1, b.ID, 2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	placed, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "A"})
	require.NoError(t, err)

	t.Run("修改状态", func(t *testing.T) {
		got, err := NewUpdateStatusUseCase(f.orderService).Execute(ctx, 1, "COMPLETED")
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", got.Status)
	})

	t.Run("非法状态", func(t *testing.T) {
		_, err := NewUpdateStatusUseCase(f.orderService).Execute(ctx, 1, "SHIPPED")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
		assert.Equal(t, 422, apperrors.HTTPStatus(apperrors.GetAppError(err).Code))
	})

	t.Run("没有订单时修改状态", func(t *testing.T) {
		_, err := NewUpdateStatusUseCase(f.orderService).Execute(ctx, 2, "COMPLETED")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("查询明细", func(t *testing.T) {
		itemID := placed.OrderItems[0].ID

		got, err := NewGetOrderItemUseCase(f.orderService).Execute(ctx, 1, placed.ID, itemID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Quantity)

		_, err = NewGetOrderItemUseCase(f.orderService).Execute(ctx, 1, placed.ID, 999)
		assert.ErrorIs(t, err, order.ErrOrderItemNotFound)
	})

	t.Run("其他用户的订单", func(t *testing.T) {
		_, err := NewGetOrderItemsUseCase(f.orderService).Execute(ctx, 2, placed.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("删除", func(t *testing.T) {
		del := NewDeleteOrderUseCase(f.orderService)
		assert.ErrorIs(t, del.Execute(ctx, 99), order.ErrOrderNotFound)
		require.NoError(t, del.Execute(ctx, placed.ID))

		list, err := NewListOrdersUseCase(f.orderService).Execute(ctx, 1, 10)
		require.NoError(t, err)
		assert.Zero(t, list.Total)
	})
}
