package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus 解析状态字符串(忽略首尾空白,区分大小写)
// 非法值返回ErrInvalidStatus(422)
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusPending, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus.WithMessage("非法的订单状态: %s", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Order 订单(聚合根)
// 1. 每个用户只有一个订单,ID即用户ID
// 2. Total是冗余字段,始终等于Σ price × quantity
// 3. 重复下单时明细整体替换为当前购物车的快照
type Order struct {
	ID              uint
	UserID          uint
	Status          Status
	Total           decimal.Decimal
	OrderDate       time.Time
	ShippingAddress string
	Items           []*OrderItem
}

// OrderItem 订单明细
// Price是下单时的图书单价快照,之后改价不影响历史订单
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// NewOrder 创建待处理订单
func NewOrder(userID uint, shippingAddress string) *Order {
	return &Order{
		ID:              userID,
		UserID:          userID,
		Status:          StatusPending,
		Total:           decimal.Zero,
		OrderDate:       time.Now(),
		ShippingAddress: shippingAddress,
		Items:           []*OrderItem{},
	}
}

// ReplaceItems 用新的明细整体替换旧明细,并重新计算总额
func (o *Order) ReplaceItems(items []*OrderItem) {
	for _, item := range items {
		item.OrderID = o.ID
	}
	o.Items = items
	o.Total = CalculateTotal(o)
}

// UpdateStatus 覆盖状态
func (o *Order) UpdateStatus(status Status) {
	o.Status = status
}

// FindItem 按明细ID查找
func (o *Order) FindItem(itemID uint) *OrderItem {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// CalculateTotal 计算Σ price × quantity,没有明细时为0
func CalculateTotal(o *Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
