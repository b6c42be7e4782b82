package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用decimal(DECIMAL(10,2)),避免浮点误差
// 2. ISBN唯一(数据库唯一索引保证,Service层预检给出友好错误)
// 3. 分类只保存ID集合,不跨聚合持有Category对象
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) (*Book, error) {
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Price:       price,
		Description: description,
		CoverImage:  coverImage,
		CategoryIDs: categoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Replace 覆盖全部标量字段,分类集合整体替换(不是合并)
func (b *Book) Replace(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	b.Title = title
	b.Author = author
	b.ISBN = isbn
	b.Price = price
	b.Description = description
	b.CoverImage = coverImage
	b.CategoryIDs = categoryIDs
	b.UpdatedAt = time.Now()
	return nil
}

// maxPrice DECIMAL(10,2)可存的上限(不含)
var maxPrice = decimal.New(1, 8)

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	if !price.Equal(price.Round(2)) || price.GreaterThanOrEqual(maxPrice) {
		return ErrPriceOutOfRange
	}
	return nil
}

// HasCategory 图书是否属于指定分类
func (b *Book) HasCategory(categoryID uint) bool {
	for _, id := range b.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
