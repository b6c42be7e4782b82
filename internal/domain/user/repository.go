package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层,具体实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户并写入角色关联
	// 邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail 邮箱是否已注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindRoleByName 不存在返回ErrRoleNotFound
	FindRoleByName(ctx context.Context, name RoleName) (*Role, error)
}
