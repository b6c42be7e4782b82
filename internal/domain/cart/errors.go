package cart

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 用户没有购物车
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrCartItemNotFound 明细不存在或不属于当前用户
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车明细不存在")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeValidation, "数量必须大于0")
)
