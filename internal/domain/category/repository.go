package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, category *Category) error

	// FindByID 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs 返回存在的分类,不存在的ID被忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)

	FindAll(ctx context.Context) ([]*Category, error)

	// Update 不存在返回ErrCategoryNotFound
	Update(ctx context.Context, category *Category) error

	// Delete 软删除并解除与图书的关联,不存在返回ErrCategoryNotFound
	Delete(ctx context.Context, id uint) error
}
