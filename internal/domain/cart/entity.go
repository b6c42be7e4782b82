package cart

import (
	"time"
)

// ShoppingCart 购物车(聚合根)
// 与用户一对一,ID即用户ID,注册时创建
type ShoppingCart struct {
	ID        uint
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车明细
// 同一购物车中每本书最多一行(唯一索引 + 合并逻辑保证)
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	BookTitle string // 只读,查询时由仓储填充
	Quantity  int
}

// NewShoppingCart 为用户创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{
		ID:        userID,
		Items:     []*CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserID 购物车所属用户
func (c *ShoppingCart) UserID() uint {
	return c.ID
}

// AddItem 加入购物车
// 已有该书的明细时累加数量,否则新增一行
func (c *ShoppingCart) AddItem(bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if item := c.findByBook(bookID); item != nil {
		item.Quantity += quantity
		c.UpdatedAt = time.Now()
		return item, nil
	}

	item := &CartItem{
		CartID:   c.ID,
		BookID:   bookID,
		Quantity: quantity,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return item, nil
}

// UpdateItemQuantity 覆盖数量(不是累加)
func (c *ShoppingCart) UpdateItemQuantity(itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item := c.FindItem(itemID)
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now()
	return item, nil
}

// RemoveItem 移除明细
func (c *ShoppingCart) RemoveItem(itemID uint) error {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrCartItemNotFound
}

// FindItem 按明细ID查找,不属于本购物车返回nil
func (c *ShoppingCart) FindItem(itemID uint) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

func (c *ShoppingCart) findByBook(bookID uint) *CartItem {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item
		}
	}
	return nil
}

// IsEmpty 购物车是否为空
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}
