//go:build wireinject
// +build wireinject

// 依赖注入配置,修改后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	"github.com/xiebiao/onlinebookstore/internal/application"
	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	appcategory "github.com/xiebiao/onlinebookstore/internal/application/category"
	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	appuser "github.com/xiebiao/onlinebookstore/internal/application/user"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/handler"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/router"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideEventPublisher,
	metrics.New,
	mysql.NewTxManager,
	wire.Bind(new(application.Transactor), new(*mysql.TxManager)),
	redis.NewSessionStore,
	wire.Bind(new(application.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideBookCache,
	wire.Bind(new(application.BookCache), new(*redis.BookCache)),
)

var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
)

var domainSet = wire.NewSet(
	provideUserService,
	provideBookService,
	category.NewService,
	cart.NewService,
	order.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksByCategoryUseCase,
	provideCategoryCache,
	appcategory.NewService,
	appcart.NewGetShoppingCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewDeleteItemUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewGetOrderItemsUseCase,
	apporder.NewGetOrderItemUseCase,
)

var httpSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	provideHTTPServer,
)

// InitializeApp 组装应用,cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		httpSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
