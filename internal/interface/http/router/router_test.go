package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	appcategory "github.com/xiebiao/onlinebookstore/internal/application/category"
	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	appuser "github.com/xiebiao/onlinebookstore/internal/application/user"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/handler"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/internal/testutil"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// memSessions 内存版会话与黑名单
type memSessions struct {
	mu        sync.Mutex
	sessions  map[uint]*redis.Session
	blacklist map[string]struct{}
}

func newMemSessions() *memSessions {
	return &memSessions{
		sessions:  make(map[uint]*redis.Session),
		blacklist: make(map[string]struct{}),
	}
}

func (s *memSessions) SaveSession(_ context.Context, sess *redis.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *memSessions) GetSession(_ context.Context, userID uint) (*redis.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return sess, nil
}

func (s *memSessions) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memSessions) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = struct{}{}
	return nil
}

func (s *memSessions) IsInBlacklist(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklist[token]
	return ok, nil
}

// nopBookCache 始终未命中
type nopBookCache struct{}

func (nopBookCache) Get(context.Context, uint) (*book.Book, error) { return nil, nil }
func (nopBookCache) Set(context.Context, *book.Book) error         { return nil }
func (nopBookCache) Delete(context.Context, uint) error            { return nil }

type server struct {
	engine     *gin.Engine
	jwtManager *jwt.Manager
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	tx := mysql.NewTxManager(db)
	m := metrics.New()
	sessions := newMemSessions()
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	publisher := messaging.NoopPublisher{}

	bookService := book.NewService(mysql.NewBookRepository(db), book.NewSpecificationBuilder(book.NewProviderRegistry(book.DefaultProviders()...)))
	categoryService := category.NewService(mysql.NewCategoryRepository(db))
	cartService := cart.NewService(mysql.NewCartRepository(db))
	orderService := order.NewService(mysql.NewOrderRepository(db))
	userService := user.NewService(mysql.NewUserRepository(db), bcrypt.MinCost)

	categoryCache, err := appcategory.NewCache(16)
	require.NoError(t, err)

	h := Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(userService, cartService, tx, publisher, m),
			appuser.NewLoginUseCase(userService, jwtManager, sessions),
			appuser.NewRefreshTokenUseCase(jwtManager, sessions),
			appuser.NewLogoutUseCase(jwtManager, sessions),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookService),
			appbook.NewGetBookUseCase(bookService, nopBookCache{}, m),
			appbook.NewSearchBooksUseCase(bookService),
			appbook.NewCreateBookUseCase(bookService, categoryService, tx, m),
			appbook.NewUpdateBookUseCase(bookService, categoryService, tx, nopBookCache{}),
			appbook.NewDeleteBookUseCase(bookService, nopBookCache{}),
		),
		Category: handler.NewCategoryHandler(
			appcategory.NewService(categoryService, bookService, nopBookCache{}, categoryCache, m),
			appbook.NewListBooksByCategoryUseCase(bookService, categoryService),
		),
		Cart: handler.NewCartHandler(
			appcart.NewGetShoppingCartUseCase(cartService),
			appcart.NewAddItemUseCase(cartService, bookService, tx, m),
			appcart.NewUpdateItemUseCase(cartService, tx),
			appcart.NewDeleteItemUseCase(cartService, tx),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(cartService, bookService, orderService, tx, publisher, m),
			apporder.NewUpdateStatusUseCase(orderService),
			apporder.NewListOrdersUseCase(orderService),
			apporder.NewDeleteOrderUseCase(orderService),
			apporder.NewGetOrderItemsUseCase(orderService),
			apporder.NewGetOrderItemUseCase(orderService),
		),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	auth := middleware.NewAuthMiddleware(jwtManager, sessions)
	return &server{engine: New(cfg, m, auth, h), jwtManager: jwtManager}
}

func (s *server) token(t *testing.T, userID uint, roles ...string) string {
	t.Helper()
	pair, err := s.jwtManager.GenerateToken(userID, "someone@example.com", roles)
	require.NoError(t, err)
	return pair.AccessToken
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *server) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestPublicRoutes(t *testing.T) {
	s := newServer(t)

	w, _ := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookstore_http_requests_total")

	w, env := s.do(t, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40400, env.Code)
}

func TestAccessControl(t *testing.T) {
	s := newServer(t)
	userToken := s.token(t, 1, "USER")
	adminToken := s.token(t, 2, "ADMIN")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"未登录", http.MethodGet, "/books", "", http.StatusUnauthorized},
		{"Token无效", http.MethodGet, "/books", "garbage", http.StatusUnauthorized},
		{"USER访问USER接口", http.MethodGet, "/books", userToken, http.StatusOK},
		{"ADMIN满足USER级别", http.MethodGet, "/categories", adminToken, http.StatusOK},
		{"USER访问ADMIN接口", http.MethodGet, "/orders", userToken, http.StatusForbidden},
		{"USER删除图书", http.MethodDelete, "/books/1", userToken, http.StatusForbidden},
		{"ADMIN查看全部订单", http.MethodGet, "/orders", adminToken, http.StatusOK},
		{"没有角色", http.MethodGet, "/books", s.token(t, 3), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("格式错误的Authorization", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("Authorization", "Token "+userToken)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	register := map[string]any{
		"email":            "alice@example.com",
		"password":         "secret123",
		"repeat_password":  "secret123",
		"first_name":       "Alice",
		"last_name":        "Liddell",
		"shipping_address": "Main St 1",
	}

	w, env := s.do(t, http.MethodPost, "/auth/registration", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[appuser.UserDTO](t, env.Data)
	assert.Equal(t, []string{"USER"}, registered.Roles)
	assert.NotContains(t, w.Body.String(), "password")

	t.Run("邮箱重复", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/auth/registration", "", register)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("两次密码不一致", func(t *testing.T) {
		bad := map[string]any{}
		for k, v := range register {
			bad[k] = v
		}
		bad["email"] = "bob@example.com"
		bad["repeat_password"] = "other"
		w, _ := s.do(t, http.MethodPost, "/auth/registration", "", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("密码错误", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "alice@example.com", "password": "wrong-pass"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w, env = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[appuser.LoginResponse](t, env.Data)
	require.NotEmpty(t, login.AccessToken)

	t.Run("注册后有空购物车", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/cart", login.AccessToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		c := decode[appcart.ShoppingCartDTO](t, env.Data)
		assert.Equal(t, registered.ID, c.UserID)
		assert.Empty(t, c.CartItems)
	})

	t.Run("刷新Token", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": login.RefreshToken})
		require.Equal(t, http.StatusOK, w.Code)
		refreshed := decode[appuser.RefreshResponse](t, env.Data)
		assert.NotEmpty(t, refreshed.AccessToken)

		w, _ = s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": login.AccessToken})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/auth/logout", login.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w, _ = s.do(t, http.MethodGet, "/cart", login.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, _ = s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": login.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "登出后Refresh Token失效")
	})
}

func TestShoppingFlow(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, 100, "ADMIN")

	w, env := s.do(t, http.MethodPost, "/categories", admin, map[string]any{"name": "Java"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	java := decode[appcategory.CategoryDTO](t, env.Data)

	t.Run("非法图书参数", func(t *testing.T) {
		tests := []struct {
			name  string
			isbn  string
			price any
		}{
			{"价格为0", "0000000000000", 0},
			{"价格超过两位小数", "0000000000000", "1.005"},
			{"价格超出列范围", "0000000000000", 100000000},
			{"ISBN超过13位", "00000000000000", "1.00"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w, _ := s.do(t, http.MethodPost, "/books", admin, map[string]any{
					"title": "Free", "author": "x", "isbn": tt.isbn, "price": tt.price,
				})
				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("分类名超过100字符", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/categories", admin, map[string]any{"name": strings.Repeat("a", 101)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w, env = s.do(t, http.MethodPost, "/books", admin, map[string]any{
		"title": "Effective Java", "author": "Joshua Bloch", "isbn": "9780134685991",
		"price": "45.50", "category_ids": []uint{java.ID, 999},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[appbook.BookDTO](t, env.Data)
	assert.Equal(t, []uint{java.ID}, created.CategoryIDs)

	w, _ = s.do(t, http.MethodPost, "/books", admin, map[string]any{
		"title": "Copy", "author": "x", "isbn": "9780134685991", "price": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 注册一个普通用户
	w, env = s.do(t, http.MethodPost, "/auth/registration", "", map[string]any{
		"email": "bob@example.com", "password": "secret123", "repeat_password": "secret123",
		"first_name": "Bob", "last_name": "Smith", "shipping_address": "Elm St 2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bob := decode[appuser.UserDTO](t, env.Data)
	bobToken := s.token(t, bob.ID, "USER")

	t.Run("搜索", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/books/search?authors=Joshua+Bloch&authors=Nobody&prices=45.5", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]appbook.BookDTO](t, env.Data)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)
	})

	t.Run("分类下的图书", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/categories/"+itoa(java.ID)+"/books", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, string(env.Data), "category_ids")

		w, _ = s.do(t, http.MethodGet, "/categories/999/books", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("非法ID", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/books/abc", bobToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("加购合并数量", func(t *testing.T) {
		s.do(t, http.MethodPost, "/cart", bobToken, map[string]any{"book_id": created.ID, "quantity": 2})
		w, env := s.do(t, http.MethodPost, "/cart", bobToken, map[string]any{"book_id": created.ID, "quantity": 3})
		require.Equal(t, http.StatusOK, w.Code)
		c := decode[appcart.ShoppingCartDTO](t, env.Data)
		require.Len(t, c.CartItems, 1)
		assert.Equal(t, 5, c.CartItems[0].Quantity)

		w, _ = s.do(t, http.MethodPost, "/cart", bobToken, map[string]any{"book_id": 999, "quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	var placed apporder.OrderDTO
	t.Run("下单", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/orders", bobToken, map[string]any{"shipping_address": "Elm St 2"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		placed = decode[apporder.OrderDTO](t, env.Data)
		assert.Equal(t, "227.50", placed.TotalDisplay)
		assert.Equal(t, "PENDING", placed.Status)
	})

	t.Run("修改订单状态", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPatch, "/orders", bobToken, map[string]any{"status": "SHIPPED"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w, env := s.do(t, http.MethodPatch, "/orders", bobToken, map[string]any{"status": "COMPLETED"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "COMPLETED", decode[apporder.OrderDTO](t, env.Data).Status)
	})

	t.Run("订单明细", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/orders/"+itoa(placed.ID)+"/items", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		items := decode[[]apporder.OrderItemDTO](t, env.Data)
		require.Len(t, items, 1)

		w, _ = s.do(t, http.MethodGet, "/orders/"+itoa(placed.ID)+"/items/"+itoa(items[0].ID), bobToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		// 其他用户看不到
		w, _ = s.do(t, http.MethodGet, "/orders/"+itoa(placed.ID)+"/items", s.token(t, 555, "USER"), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("管理员删除订单", func(t *testing.T) {
		w, _ := s.do(t, http.MethodDelete, "/orders/"+itoa(placed.ID), admin, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = s.do(t, http.MethodDelete, "/orders/"+itoa(placed.ID), admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
