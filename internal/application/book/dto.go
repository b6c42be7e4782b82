package book

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// BookDTO 图书详情
type BookDTO struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	ISBN         string          `json:"isbn"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	Description  string          `json:"description"`
	CoverImage   string          `json:"cover_image"`
	CategoryIDs  []uint          `json:"category_ids"`
}

// BookDTOWithoutCategoryIDs 按分类查询时返回,不含分类ID
type BookDTOWithoutCategoryIDs struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	ISBN         string          `json:"isbn"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	Description  string          `json:"description"`
	CoverImage   string          `json:"cover_image"`
}

func toBookDTO(b *book.Book) *BookDTO {
	categoryIDs := b.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}

	return &BookDTO{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Price:        b.Price,
		PriceDisplay: application.FormatPrice(b.Price),
		Description:  b.Description,
		CoverImage:   b.CoverImage,
		CategoryIDs:  categoryIDs,
	}
}

func toBookDTOs(books []*book.Book) []*BookDTO {
	list := make([]*BookDTO, len(books))
	for i, b := range books {
		list[i] = toBookDTO(b)
	}
	return list
}

func toBookDTOWithoutCategoryIDs(b *book.Book) *BookDTOWithoutCategoryIDs {
	return &BookDTOWithoutCategoryIDs{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Price:        b.Price,
		PriceDisplay: application.FormatPrice(b.Price),
		Description:  b.Description,
		CoverImage:   b.CoverImage,
	}
}
