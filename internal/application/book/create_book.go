package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
	"github.com/xiebiao/onlinebookstore/pkg/tracing"
)

// SaveBookRequest 创建和更新图书共用的参数
type SaveBookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint // 不存在的分类ID被忽略
}

// CreateBookUseCase 创建图书(管理员)
type CreateBookUseCase struct {
	bookService     book.Service
	categoryService category.Service
	tx              application.Transactor
	metrics         *metrics.Metrics
}

func NewCreateBookUseCase(
	bookService book.Service,
	categoryService category.Service,
	tx application.Transactor,
	m *metrics.Metrics,
) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService:     bookService,
		categoryService: categoryService,
		tx:              tx,
		metrics:         m,
	}
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req SaveBookRequest) (*BookDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "book.create")
	defer span.End()

	var created *book.Book
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		categoryIDs, err := uc.categoryService.ResolveIDs(txCtx, req.CategoryIDs)
		if err != nil {
			return err
		}

		b, err := book.NewBook(req.Title, req.Author, req.ISBN, req.Price, req.Description, req.CoverImage, categoryIDs)
		if err != nil {
			return err
		}
		if err := uc.bookService.CreateBook(txCtx, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	uc.metrics.BooksCreatedTotal.Inc()
	return toBookDTO(created), nil
}
