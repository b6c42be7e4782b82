package user

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrEmailDuplicate 邮箱已注册
	ErrEmailDuplicate = apperrors.ErrEmailDuplicate

	// ErrPasswordMismatch 两次输入的密码不一致
	ErrPasswordMismatch = apperrors.New(apperrors.ErrCodeValidation, "两次输入的密码不一致")

	// ErrRoleNotFound 角色未初始化(迁移脚本没有执行)
	ErrRoleNotFound = apperrors.New(apperrors.ErrCodeInternal, "角色不存在")
)
