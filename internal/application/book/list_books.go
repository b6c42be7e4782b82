package book

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
)

// ListBooksRequest 分页参数,非法值由领域层修正为默认值
type ListBooksRequest struct {
	Page     int
	PageSize int
	SortBy   string // id | title | price_asc | price_desc
}

// ListBooksResponse 分页结果
type ListBooksResponse struct {
	List     []*BookDTO
	Total    int64
	Page     int
	PageSize int
}

// ListBooksUseCase 图书分页列表
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
	}
	params.Normalize()

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		List:     toBookDTOs(books),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// SearchBooksUseCase 按字段多值搜索,字段之间取交集
type SearchBooksUseCase struct {
	bookService book.Service
}

func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, params book.SearchParameters) ([]*BookDTO, error) {
	books, err := uc.bookService.SearchBooks(ctx, params)
	if err != nil {
		return nil, err
	}
	return toBookDTOs(books), nil
}

// ListBooksByCategoryUseCase 分类下的图书
type ListBooksByCategoryUseCase struct {
	bookService     book.Service
	categoryService category.Service
}

func NewListBooksByCategoryUseCase(bookService book.Service, categoryService category.Service) *ListBooksByCategoryUseCase {
	return &ListBooksByCategoryUseCase{
		bookService:     bookService,
		categoryService: categoryService,
	}
}

func (uc *ListBooksByCategoryUseCase) Execute(ctx context.Context, categoryID uint) ([]*BookDTOWithoutCategoryIDs, error) {
	if _, err := uc.categoryService.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	books, err := uc.bookService.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	list := make([]*BookDTOWithoutCategoryIDs, len(books))
	for i, b := range books {
		list[i] = toBookDTOWithoutCategoryIDs(b)
	}
	return list, nil
}
