package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
)

// UpdateBookUseCase 整体替换图书字段和分类集合(管理员)
type UpdateBookUseCase struct {
	bookService     book.Service
	categoryService category.Service
	tx              application.Transactor
	cache           application.BookCache
}

func NewUpdateBookUseCase(
	bookService book.Service,
	categoryService category.Service,
	tx application.Transactor,
	cache application.BookCache,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService:     bookService,
		categoryService: categoryService,
		tx:              tx,
		cache:           cache,
	}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req SaveBookRequest) (*BookDTO, error) {
	var updated *book.Book
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookService.GetBook(txCtx, id)
		if err != nil {
			return err
		}

		categoryIDs, err := uc.categoryService.ResolveIDs(txCtx, req.CategoryIDs)
		if err != nil {
			return err
		}

		if err := b.Replace(req.Title, req.Author, req.ISBN, req.Price, req.Description, req.CoverImage, categoryIDs); err != nil {
			return err
		}
		if err := uc.bookService.UpdateBook(txCtx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	evict(ctx, uc.cache, id)
	return toBookDTO(updated), nil
}

// DeleteBookUseCase 删除图书(管理员)
type DeleteBookUseCase struct {
	bookService book.Service
	cache       application.BookCache
}

func NewDeleteBookUseCase(bookService book.Service, cache application.BookCache) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	evict(ctx, uc.cache, id)
	return nil
}

// evict 删除缓存失败只记录日志,缓存会在TTL后过期
func evict(ctx context.Context, cache application.BookCache, id uint) {
	if err := cache.Delete(ctx, id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("book_id", id).Msg("删除图书缓存失败")
	}
}
