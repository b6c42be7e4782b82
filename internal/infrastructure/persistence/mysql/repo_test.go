package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	a := mustCreateCategory(t, repo, "Java")
	b := mustCreateCategory(t, repo, "Go")

	t.Run("批量查询忽略不存在的ID", func(t *testing.T) {
		got, err := repo.FindByIDs(ctx, []uint{a.ID, 999, b.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("更新", func(t *testing.T) {
		a.Rename("Java SE", "updated")
		require.NoError(t, repo.Update(ctx, a))

		got, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Java SE", got.Name)
		assert.Equal(t, "updated", got.Description)
	})

	t.Run("删除不存在的分类", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 999), category.ErrCategoryNotFound)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2, "数据不变")
	})

	t.Run("删除后列表不包含", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b.ID))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, a.ID, all[0].ID)
	})
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	role, err := repo.FindRoleByName(ctx, user.RoleUser)
	require.NoError(t, err)

	u := user.NewUser("bob@example.com", "hash", "Bob", "Smith", "Main St 1", *role)
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	t.Run("按邮箱查询带角色", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, []string{"USER"}, got.RoleNames())
	})

	t.Run("邮箱重复", func(t *testing.T) {
		dup := user.NewUser("bob@example.com", "hash", "B", "S", "", *role)
		assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailDuplicate)

		exists, err := repo.ExistsByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		_, err = repo.FindRoleByName(ctx, "ROOT")
		assert.ErrorIs(t, err, user.ErrRoleNotFound)
	})
}

func TestCartRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	books := NewBookRepository(db)
	repo := NewCartRepository(db)
	tx := NewTxManager(db)

	b := mustCreateBook(t, books, "Effective Java", "Joshua Bloch", "9780134685991", "45.00")
	require.NoError(t, repo.Create(ctx, cart.NewShoppingCart(1)))
	require.NoError(t, repo.Create(ctx, cart.NewShoppingCart(2)))

	t.Run("重复创建", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, cart.NewShoppingCart(1)), apperrors.ErrDuplicateEntry)
	})

	t.Run("事务内加锁读取并保存明细", func(t *testing.T) {
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			c, err := repo.FindByUserIDForUpdate(ctx, 1)
			if err != nil {
				return err
			}
			item, err := c.AddItem(b.ID, 2)
			if err != nil {
				return err
			}
			return repo.SaveItem(ctx, item)
		})
		require.NoError(t, err)

		c, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.Equal(t, "Effective Java", c.Items[0].BookTitle)
	})

	t.Run("更新数量", func(t *testing.T) {
		c, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		item, err := c.AddItem(b.ID, 3)
		require.NoError(t, err)
		require.NoError(t, repo.SaveItem(ctx, item))

		c, err = repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
	})

	t.Run("不能删除其他用户的明细", func(t *testing.T) {
		c, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		itemID := c.Items[0].ID

		assert.ErrorIs(t, repo.DeleteItem(ctx, 2, itemID), cart.ErrCartItemNotFound)
		require.NoError(t, repo.DeleteItem(ctx, 1, itemID))

		c, err = repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})

	t.Run("购物车不存在", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, 42)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	o := order.NewOrder(7, "Main St 1")
	o.ReplaceItems([]*order.OrderItem{
		{BookID: 1, Quantity: 2, Price: decimal.RequireFromString("10.50")},
		{BookID: 2, Quantity: 1, Price: decimal.RequireFromString("3")},
	})
	require.NoError(t, repo.Save(ctx, o))
	require.NotZero(t, o.Items[0].ID)

	t.Run("按用户查询", func(t *testing.T) {
		got, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, order.StatusPending, got.Status)
		assert.Len(t, got.Items, 2)
		assert.True(t, decimal.RequireFromString("24").Equal(got.Total), "got %s", got.Total)
	})

	t.Run("再次保存时明细整体替换", func(t *testing.T) {
		got, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		got.ShippingAddress = "New Address"
		got.ReplaceItems([]*order.OrderItem{{BookID: 3, Quantity: 4, Price: decimal.NewFromInt(5)}})
		require.NoError(t, repo.Save(ctx, got))

		reloaded, err := repo.FindByID(ctx, 7)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.Equal(t, uint(3), reloaded.Items[0].BookID)
		assert.Equal(t, "New Address", reloaded.ShippingAddress)
		assert.True(t, decimal.NewFromInt(20).Equal(reloaded.Total))

		var count int64
		require.NoError(t, db.Model(&OrderItemModel{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "旧明细行被删除")
	})

	t.Run("更新状态", func(t *testing.T) {
		got, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		got.UpdateStatus(order.StatusCompleted)
		require.NoError(t, repo.UpdateStatus(ctx, got))

		reloaded, err := repo.FindByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, reloaded.Status)
	})

	t.Run("分页", func(t *testing.T) {
		orders, total, err := repo.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, orders, 1)
	})

	t.Run("删除", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 99), order.ErrOrderNotFound)
		require.NoError(t, repo.Delete(ctx, 7))

		_, err := repo.FindByID(ctx, 7)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestTxManager_Rollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tx := NewTxManager(db)
	categories := NewCategoryRepository(db)

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := categories.Create(ctx, category.NewCategory("Temp", "")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "事务回滚后没有数据")
}
