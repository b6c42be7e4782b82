package order

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
)

// OrderItemDTO 订单明细,price为下单时的价格快照
type OrderItemDTO struct {
	ID       uint            `json:"id"`
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderDTO 订单
type OrderDTO struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	TotalDisplay    string          `json:"total_display"`
	OrderDate       string          `json:"order_date"`
	ShippingAddress string          `json:"shipping_address"`
	OrderItems      []OrderItemDTO  `json:"order_items"`
}

func toOrderItemDTO(it *order.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:       it.ID,
		BookID:   it.BookID,
		Quantity: it.Quantity,
		Price:    it.Price,
	}
}

func toOrderItemDTOs(items []*order.OrderItem) []OrderItemDTO {
	list := make([]OrderItemDTO, len(items))
	for i, it := range items {
		list[i] = toOrderItemDTO(it)
	}
	return list
}

func toOrderDTO(o *order.Order) *OrderDTO {
	return &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		Total:           o.Total,
		TotalDisplay:    application.FormatPrice(o.Total),
		OrderDate:       application.FormatTime(o.OrderDate),
		ShippingAddress: o.ShippingAddress,
		OrderItems:      toOrderItemDTOs(o.Items),
	}
}
