package book

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidPrice 价格必须为正数
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeValidation, "价格必须大于0")

	// ErrPriceOutOfRange 价格最多两位小数且小于1亿
	ErrPriceOutOfRange = apperrors.New(apperrors.ErrCodeValidation, "价格最多两位小数且小于100000000")

	// ErrNoSpecificationProvider 搜索字段没有注册对应的条件提供者
	ErrNoSpecificationProvider = apperrors.New(apperrors.ErrCodeInternal, "没有对应的搜索条件提供者")
)
