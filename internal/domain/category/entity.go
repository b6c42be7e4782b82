package category

import (
	"time"
)

// Category 图书分类
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Rename 覆盖名称和描述
func (c *Category) Rename(name, description string) {
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
}
