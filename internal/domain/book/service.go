package book

import (
	"context"
)

// Service 图书领域服务
// 负责ISBN唯一性预检、存在性校验和动态搜索,事务与缓存由应用层处理
type Service interface {
	// CreateBook 创建图书,ISBN已存在返回ErrISBNDuplicate
	CreateBook(ctx context.Context, book *Book) error

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 保存已修改的图书,ISBN与其他图书冲突返回ErrISBNDuplicate
	UpdateBook(ctx context.Context, book *Book) error

	// DeleteBook 删除图书,不存在返回ErrBookNotFound
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// SearchBooks 按搜索参数查询,参数全空时返回全部图书
	SearchBooks(ctx context.Context, params SearchParameters) ([]*Book, error)

	// GetBooks 批量查询,结果以ID为键,不存在的ID不出现在结果中
	GetBooks(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// ListByCategory 分类下的全部图书,分类存在性由调用方校验
	ListByCategory(ctx context.Context, categoryID uint) ([]*Book, error)
}

type service struct {
	repo    Repository
	builder *SpecificationBuilder
}

// NewService 创建图书领域服务
func NewService(repo Repository, builder *SpecificationBuilder) Service {
	return &service{repo: repo, builder: builder}
}

func (s *service) CreateBook(ctx context.Context, book *Book) error {
	exists, err := s.repo.ExistsByISBN(ctx, book.ISBN, 0)
	if err != nil {
		return err
	}
	if exists {
		return ErrISBNDuplicate
	}

	// 预检与插入之间仍有并发窗口,唯一索引兜底(Repository转换为ErrISBNDuplicate)
	return s.repo.Create(ctx, book)
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, book *Book) error {
	exists, err := s.repo.ExistsByISBN(ctx, book.ISBN, book.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrISBNDuplicate
	}
	return s.repo.Update(ctx, book)
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *service) SearchBooks(ctx context.Context, params SearchParameters) ([]*Book, error) {
	spec, err := s.builder.Build(params)
	if err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, spec)
}

func (s *service) GetBooks(ctx context.Context, ids []uint) (map[uint]*Book, error) {
	books, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[uint]*Book, len(books))
	for _, b := range books {
		result[b.ID] = b
	}
	return result, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID uint) ([]*Book, error) {
	return s.repo.FindAllByCategoryID(ctx, categoryID)
}
