package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// orderRepository 订单仓储实现
// 1. Order和OrderItem属于同一聚合,一起保存
// 2. 查询时Preload明细,避免N+1
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.findOne(getDB(ctx, r.db).Where("id = ?", id))
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uint) (*order.Order, error) {
	return r.findOne(getDB(ctx, r.db).Where("user_id = ?", userID))
}

// Save 订单行upsert,明细先删后插(整体替换)
func (r *orderRepository) Save(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(model).Error
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", model.ID).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "保存订单失败")
	}

	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	err := getDB(ctx, r.db).Model(&OrderModel{ID: o.ID}).Update("status", string(o.Status)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单状态失败")
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context, page, pageSize int) ([]*order.Order, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&OrderModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := db.Preload("Items", orderItemsByID).
		Order("id ASC").
		Limit(pageSize).
		Offset(pageOffset(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Wrap(err, "删除订单失败")
	}
	return nil
}

func (r *orderRepository) findOne(query *gorm.DB) (*order.Order, error) {
	var model OrderModel
	if err := query.Preload("Items", orderItemsByID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			OrderID:  o.ID,
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
	}
}

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]*order.OrderItem, len(model.Items))
	for i, it := range model.Items {
		items[i] = &order.OrderItem{
			ID:       it.ID,
			OrderID:  it.OrderID,
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}

	return &order.Order{
		ID:              model.ID,
		UserID:          model.UserID,
		Status:          order.Status(model.Status),
		Total:           model.Total,
		OrderDate:       model.OrderDate,
		ShippingAddress: model.ShippingAddress,
		Items:           items,
	}
}
