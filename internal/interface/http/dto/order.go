package dto

// PlaceOrderRequest 下单
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=255" example:"Main St 1"`
}

// UpdateOrderStatusRequest 修改订单状态,取值由领域层校验(非法值返回422)
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"COMPLETED"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"size" binding:"omitempty,min=1,max=100" example:"20"`
}
