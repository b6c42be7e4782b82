package user

import (
	"time"
)

// RoleName 角色名
type RoleName string

const (
	RoleUser  RoleName = "USER"
	RoleAdmin RoleName = "ADMIN"
)

// Satisfies 角色是否满足要求,ADMIN可以访问USER级别的接口
func (r RoleName) Satisfies(required RoleName) bool {
	if r == required {
		return true
	}
	return r == RoleAdmin && required == RoleUser
}

// Role 角色(roles表由迁移脚本初始化)
type Role struct {
	ID   uint
	Name RoleName
}

// User 用户实体(聚合根)
// Password是bcrypt哈希,任何响应都不返回
type User struct {
	ID              uint
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
	Roles           []Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建新用户,hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, firstName, lastName, shippingAddress string, roles ...Role) *User {
	now := time.Now()
	return &User{
		Email:           email,
		Password:        hashedPassword,
		FirstName:       firstName,
		LastName:        lastName,
		ShippingAddress: shippingAddress,
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// RoleNames 角色名列表(写入JWT)
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}

// HasAnyRole 给定角色中是否有满足required的
func HasAnyRole(roles []string, required RoleName) bool {
	for _, r := range roles {
		if RoleName(r).Satisfies(required) {
			return true
		}
	}
	return false
}
