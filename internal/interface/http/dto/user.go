package dto

import (
	appuser "github.com/xiebiao/onlinebookstore/internal/application/user"
)

// RegisterRequest 注册请求
// repeat_password与password的一致性在binding阶段校验
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=100" example:"alice@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=64" example:"secret123"`
	RepeatPassword  string `json:"repeat_password" binding:"required,eqfield=Password" example:"secret123"`
	FirstName       string `json:"first_name" binding:"required,max=100" example:"Alice"`
	LastName        string `json:"last_name" binding:"required,max=100" example:"Liddell"`
	ShippingAddress string `json:"shipping_address" binding:"max=255" example:"Main St 1"`
}

func (r RegisterRequest) ToUseCase() appuser.RegisterRequest {
	return appuser.RegisterRequest{
		Email:           r.Email,
		Password:        r.Password,
		RepeatPassword:  r.RepeatPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		ShippingAddress: r.ShippingAddress,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
