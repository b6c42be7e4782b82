package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

const cacheName = "book"

// GetBookUseCase 图书详情,Cache-Aside读取
// 缓存故障时降级为直接查库
type GetBookUseCase struct {
	bookService book.Service
	cache       application.BookCache
	metrics     *metrics.Metrics
}

func NewGetBookUseCase(bookService book.Service, cache application.BookCache, m *metrics.Metrics) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
		metrics:     m,
	}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	logger := log.Ctx(ctx)

	cached, err := uc.cache.Get(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Uint("book_id", id).Msg("读取图书缓存失败")
	}
	if cached != nil {
		uc.metrics.ObserveCache(cacheName, true)
		return toBookDTO(cached), nil
	}
	uc.metrics.ObserveCache(cacheName, false)

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, b); err != nil {
		logger.Warn().Err(err).Uint("book_id", id).Msg("写入图书缓存失败")
	}
	return toBookDTO(b), nil
}
