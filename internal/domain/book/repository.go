package book

import (
	"context"
)

// Repository 图书仓储接口
// 由domain层定义,infrastructure层(GORM)实现
type Repository interface {
	// Create 创建图书(同时写入分类关联)
	// ISBN重复时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(含分类ID),不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询(不加载分类),不存在的ID被忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// ExistsByISBN 检查ISBN是否被其他图书占用,excludeID为0表示不排除
	ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error)

	// Update 更新图书,分类关联整体替换
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除),不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 分页查询
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 按动态条件查询,MatchAll返回全部图书
	Search(ctx context.Context, spec Specification) ([]*Book, error)

	// FindAllByCategoryID 查询某分类下的图书(不加载分类ID)
	FindAllByCategoryID(ctx context.Context, categoryID uint) ([]*Book, error)
}

// 排序方式
const (
	SortByID        = "id"
	SortByTitle     = "title"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段,为空时按ID升序
}

// Normalize 填充默认值并限制上限
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	switch p.SortBy {
	case SortByID, SortByTitle, SortByPriceAsc, SortByPriceDesc:
	default:
		p.SortBy = SortByID
	}
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
