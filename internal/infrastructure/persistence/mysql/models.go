package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORM数据模型
// domain层实体不带tag,由各Repository负责toXxxEntity/toXxxModel转换
// 表结构以migrations/*.sql为准,AutoMigrate仅用于开发环境和单元测试

// RoleModel 角色
type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:20;not null;comment:角色名(USER/ADMIN)"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// UserModel 用户
type UserModel struct {
	ID              uint           `gorm:"primaryKey"`
	Email           string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password        string         `gorm:"size:255;not null;comment:密码(bcrypt)"`
	FirstName       string         `gorm:"size:100;not null;comment:名"`
	LastName        string         `gorm:"size:100;not null;comment:姓"`
	ShippingAddress string         `gorm:"size:255;comment:收货地址"`
	Roles           []RoleModel    `gorm:"many2many:users_roles;joinForeignKey:UserID;joinReferences:RoleID"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"size:100;not null;comment:分类名"`
	Description string         `gorm:"size:255;comment:描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel 图书
// 分类关联不走GORM many2many,由BookCategoryModel显式维护(整体替换语义更直接)
// ISBN唯一索引只覆盖未删除的行,见createLiveISBNIndex
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index;size:255;not null;comment:书名"`
	Author      string          `gorm:"index;size:255;not null;comment:作者"`
	ISBN        string          `gorm:"column:isbn;index;size:13;not null;comment:ISBN号"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);index;not null;comment:价格"`
	Description string          `gorm:"size:1000;comment:图书描述"`
	CoverImage  string          `gorm:"size:255;comment:封面图片"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookCategoryModel 图书-分类关联表
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (BookCategoryModel) TableName() string {
	return "books_categories"
}

// ShoppingCartModel 购物车,主键即用户ID
type ShoppingCartModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement:false;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

func (ShoppingCartModel) TableName() string {
	return "shopping_carts"
}

// CartItemModel 购物车明细,(cart_id, book_id)唯一
type CartItemModel struct {
	ID       uint      `gorm:"primaryKey"`
	CartID   uint      `gorm:"uniqueIndex:uk_cart_book;not null;comment:购物车ID"`
	BookID   uint      `gorm:"uniqueIndex:uk_cart_book;not null;comment:图书ID"`
	Quantity int       `gorm:"not null;comment:数量"`
	Book     BookModel `gorm:"foreignKey:BookID"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel 订单,主键即用户ID
type OrderModel struct {
	ID              uint             `gorm:"primaryKey;autoIncrement:false;comment:用户ID"`
	UserID          uint             `gorm:"uniqueIndex;not null;comment:用户ID"`
	Status          string           `gorm:"size:20;index;not null;comment:状态(PENDING/COMPLETED/CANCELLED)"`
	Total           decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	OrderDate       time.Time        `gorm:"not null;comment:下单时间"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细,Price为下单时价格快照
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"index;not null;comment:订单ID"`
	BookID   uint            `gorm:"index;not null;comment:图书ID"`
	Quantity int             `gorm:"not null;comment:数量"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// allModels AutoMigrate使用
func allModels() []interface{} {
	return []interface{}{
		&RoleModel{},
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&BookCategoryModel{},
		&ShoppingCartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	}
}
