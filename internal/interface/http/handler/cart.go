package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// CartHandler 当前用户的购物车
type CartHandler struct {
	getUseCase    *appcart.GetShoppingCartUseCase
	addUseCase    *appcart.AddItemUseCase
	updateUseCase *appcart.UpdateItemUseCase
	deleteUseCase *appcart.DeleteItemUseCase
}

func NewCartHandler(
	getUseCase *appcart.GetShoppingCartUseCase,
	addUseCase *appcart.AddItemUseCase,
	updateUseCase *appcart.UpdateItemUseCase,
	deleteUseCase *appcart.DeleteItemUseCase,
) *CartHandler {
	return &CartHandler{
		getUseCase:    getUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.ShoppingCartDTO}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加入购物车,已有同一本书时数量累加
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=appcart.ShoppingCartDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.addUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:   middleware.MustGetUserID(c),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 修改明细数量
// @Summary      修改购物车明细
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "明细ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.ShoppingCartDTO}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /cart/cart-items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteItem 删除明细
// @Summary      删除购物车明细
// @Tags         购物车
// @Security     BearerAuth
// @Param        id path int true "明细ID"
// @Success      204
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /cart/cart-items/{id} [delete]
func (h *CartHandler) DeleteItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
