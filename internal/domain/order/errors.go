package order

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在或不属于当前用户
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderItemNotFound 订单明细不存在
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrInvalidStatus 非法的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeUnprocessable, "非法的订单状态")
)
