package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/handler"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序:Recovery → Tracing → 日志 → 指标 → CORS → 认证 → 角色 → Handler
func New(cfg *config.Config, m *metrics.Metrics, auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}
	dto.RegisterValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.NoRoute(func(c *gin.Context) {
		response.ErrorWithCode(c, apperrors.ErrCodeNotFound, "接口不存在")
	})

	userOnly := auth.RequireRole(user.RoleUser)
	adminOnly := auth.RequireRole(user.RoleAdmin)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/registration", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", auth.RequireAuth(), userOnly, h.Auth.Logout)
	}

	authed := r.Group("", auth.RequireAuth())

	books := authed.Group("/books")
	{
		books.GET("", userOnly, h.Book.List)
		books.GET("/search", userOnly, h.Book.Search)
		books.GET("/:id", userOnly, h.Book.Get)
		books.POST("", adminOnly, h.Book.Create)
		books.PUT("/:id", adminOnly, h.Book.Update)
		books.DELETE("/:id", adminOnly, h.Book.Delete)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", userOnly, h.Category.List)
		categories.GET("/:id", userOnly, h.Category.Get)
		categories.GET("/:id/books", userOnly, h.Category.ListBooks)
		categories.POST("", adminOnly, h.Category.Create)
		categories.PUT("/:id", adminOnly, h.Category.Update)
		categories.DELETE("/:id", adminOnly, h.Category.Delete)
	}

	cart := authed.Group("/cart", userOnly)
	{
		cart.GET("", h.Cart.Get)
		cart.POST("", h.Cart.AddItem)
		cart.PUT("/cart-items/:id", h.Cart.UpdateItem)
		cart.DELETE("/cart-items/:id", h.Cart.DeleteItem)
	}

	orders := authed.Group("/orders")
	{
		orders.GET("", adminOnly, h.Order.List)
		orders.POST("", userOnly, h.Order.Place)
		orders.PATCH("", userOnly, h.Order.UpdateStatus)
		orders.DELETE("/:id", adminOnly, h.Order.Delete)
		orders.GET("/:id/items", userOnly, h.Order.Items)
		orders.GET("/:id/items/:itemId", userOnly, h.Order.Item)
	}

	return r
}
