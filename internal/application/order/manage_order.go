package order

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
)

// UpdateStatusUseCase 修改当前用户订单的状态
type UpdateStatusUseCase struct {
	orderService order.Service
}

func NewUpdateStatusUseCase(orderService order.Service) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderService: orderService}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, userID uint, status string) (*OrderDTO, error) {
	o, err := uc.orderService.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(o), nil
}

// GetOrderItemsUseCase 订单明细,订单必须属于当前用户
type GetOrderItemsUseCase struct {
	orderService order.Service
}

func NewGetOrderItemsUseCase(orderService order.Service) *GetOrderItemsUseCase {
	return &GetOrderItemsUseCase{orderService: orderService}
}

func (uc *GetOrderItemsUseCase) Execute(ctx context.Context, userID, orderID uint) ([]OrderItemDTO, error) {
	items, err := uc.orderService.FindItems(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderItemDTOs(items), nil
}

// GetOrderItemUseCase 单个订单明细
type GetOrderItemUseCase struct {
	orderService order.Service
}

func NewGetOrderItemUseCase(orderService order.Service) *GetOrderItemUseCase {
	return &GetOrderItemUseCase{orderService: orderService}
}

func (uc *GetOrderItemUseCase) Execute(ctx context.Context, userID, orderID, itemID uint) (*OrderItemDTO, error) {
	item, err := uc.orderService.FindItem(ctx, userID, orderID, itemID)
	if err != nil {
		return nil, err
	}
	dto := toOrderItemDTO(item)
	return &dto, nil
}

// ListOrdersResponse 订单分页
type ListOrdersResponse struct {
	List     []*OrderDTO
	Total    int64
	Page     int
	PageSize int
}

// ListOrdersUseCase 全部订单(管理员)
type ListOrdersUseCase struct {
	orderService order.Service
}

func NewListOrdersUseCase(orderService order.Service) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderService: orderService}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, page, pageSize int) (*ListOrdersResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := uc.orderService.ListOrders(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		list[i] = toOrderDTO(o)
	}
	return &ListOrdersResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DeleteOrderUseCase 删除订单及明细(管理员)
type DeleteOrderUseCase struct {
	orderService order.Service
}

func NewDeleteOrderUseCase(orderService order.Service) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orderService: orderService}
}

func (uc *DeleteOrderUseCase) Execute(ctx context.Context, id uint) error {
	return uc.orderService.DeleteOrder(ctx, id)
}
