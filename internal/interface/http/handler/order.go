package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// OrderHandler 订单
type OrderHandler struct {
	placeUseCase        *apporder.PlaceOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
	listUseCase         *apporder.ListOrdersUseCase
	deleteUseCase       *apporder.DeleteOrderUseCase
	itemsUseCase        *apporder.GetOrderItemsUseCase
	itemUseCase         *apporder.GetOrderItemUseCase
}

func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	deleteUseCase *apporder.DeleteOrderUseCase,
	itemsUseCase *apporder.GetOrderItemsUseCase,
	itemUseCase *apporder.GetOrderItemUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:        placeUseCase,
		updateStatusUseCase: updateStatusUseCase,
		listUseCase:         listUseCase,
		deleteUseCase:       deleteUseCase,
		itemsUseCase:        itemsUseCase,
		itemUseCase:         itemUseCase,
	}
}

// Place 根据购物车下单
// @Summary      下单
// @Description  每个用户只有一个订单,再次下单时明细整体替换为当前购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "收货地址"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      404 {object} response.Response "购物车或图书不存在"
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.MustGetUserID(c),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改当前用户订单的状态
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateOrderStatusRequest true "PENDING | COMPLETED | CANCELLED"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      422 {object} response.Response "非法的订单状态"
// @Router       /orders [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 全部订单
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderDTO}}
// @Failure      403 {object} response.Response "无权限"
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// Delete 删除订单
// @Summary      删除订单
// @Tags         订单
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      204
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Items 订单明细
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/items [get]
func (h *OrderHandler) Items(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.itemsUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Item 单个订单明细
// @Summary      单个订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Success      200 {object} response.Response{data=apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单或明细不存在"
// @Router       /orders/{id}/items/{itemId} [get]
func (h *OrderHandler) Item(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	result, err := h.itemUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
