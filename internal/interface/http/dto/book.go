package dto

import (
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// SaveBookRequest 创建/更新图书,更新时整体替换
type SaveBookRequest struct {
	Title       string          `json:"title" binding:"required,max=255" example:"Effective Java"`
	Author      string          `json:"author" binding:"required,max=255" example:"Joshua Bloch"`
	ISBN        string          `json:"isbn" binding:"required,max=13" example:"9780134685991"`
	Price       decimal.Decimal `json:"price" binding:"required,decimal_gt0,decimal_money" swaggertype:"number" example:"45.50"`
	Description string          `json:"description" binding:"max=1000"`
	CoverImage  string          `json:"cover_image" binding:"max=255" example:"https://example.com/cover.jpg"`
	CategoryIDs []uint          `json:"category_ids"`
}

func (r SaveBookRequest) ToUseCase() appbook.SaveBookRequest {
	return appbook.SaveBookRequest{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

// ListBooksQuery 分页参数
type ListBooksQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"size" binding:"omitempty,min=1,max=100" example:"20"`
	SortBy   string `form:"sort" binding:"omitempty,oneof=id title price_asc price_desc" example:"title"`
}

// SearchBooksQuery 搜索参数,同一字段可以重复出现(?authors=a&authors=b)
type SearchBooksQuery struct {
	Authors      []string `form:"authors"`
	Titles       []string `form:"titles"`
	ISBNs        []string `form:"isbns"`
	Descriptions []string `form:"descriptions"`
	CoverImages  []string `form:"coverImages"`
	Prices       []string `form:"prices"`
}

func (q SearchBooksQuery) ToParameters() book.SearchParameters {
	return book.SearchParameters{
		Authors:      q.Authors,
		Titles:       q.Titles,
		ISBNs:        q.ISBNs,
		Descriptions: q.Descriptions,
		CoverImages:  q.CoverImages,
		Prices:       q.Prices,
	}
}

// CategoryRequest 创建/更新分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Java"`
	Description string `json:"description" binding:"max=255"`
}
