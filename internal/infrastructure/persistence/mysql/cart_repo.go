package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// cartRepository 购物车仓储实现
// 明细的书名来自books表(包含已软删除的图书)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &ShoppingCartModel{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry.WithMessage("用户%d的购物车已存在", c.ID)
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}
	return nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.find(getDB(ctx, r.db), userID, false)
}

// FindByUserIDForUpdate SELECT ... FOR UPDATE锁定购物车行和明细行
// 并发的加购请求在购物车行上串行化,明细用加锁读取最新提交的数量
func (r *cartRepository) FindByUserIDForUpdate(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.find(getDB(ctx, r.db), userID, true)
}

func (r *cartRepository) SaveItem(ctx context.Context, item *cart.CartItem) error {
	db := getDB(ctx, r.db)

	if item.ID == 0 {
		model := &CartItemModel{
			CartID:   item.CartID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
		if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return apperrors.ErrDuplicateEntry.WithMessage("购物车中已存在该图书")
			}
			return apperrors.Wrap(err, "保存购物车明细失败")
		}
		item.ID = model.ID
		return nil
	}

	err := db.Model(&CartItemModel{}).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Update("quantity", item.Quantity).Error
	if err != nil {
		return apperrors.Wrap(err, "更新购物车明细失败")
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	result := getDB(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// find 先查购物车行,再单独加载明细
// 锁子句不会传递给Preload的查询,明细查询需要单独加锁:
// REPEATABLE READ下普通读取走事务快照,看不到锁等待期间其他事务提交的明细
func (r *cartRepository) find(db *gorm.DB, userID uint, lock bool) (*cart.ShoppingCart, error) {
	cartQuery := db
	if lock {
		cartQuery = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model ShoppingCartModel
	if err := cartQuery.First(&model, userID).Error; err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	itemQuery := db.Session(&gorm.Session{NewDB: true})
	if lock {
		itemQuery = itemQuery.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var items []CartItemModel
	err := itemQuery.
		Preload("Book", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Where("cart_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车明细失败")
	}
	model.Items = items

	return toCartEntity(&model), nil
}

func toCartEntity(model *ShoppingCartModel) *cart.ShoppingCart {
	items := make([]*cart.CartItem, 0, len(model.Items))
	for _, it := range model.Items {
		items = append(items, &cart.CartItem{
			ID:        it.ID,
			CartID:    it.CartID,
			BookID:    it.BookID,
			BookTitle: it.Book.Title,
			Quantity:  it.Quantity,
		})
	}

	return &cart.ShoppingCart{
		ID:        model.ID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
