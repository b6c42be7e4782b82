package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// userRepository 用户仓储实现
// 邮箱唯一索引冲突转换为user.ErrEmailDuplicate
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 写入用户及users_roles关联
// Omit("Roles.*")只写关联,不回写roles表
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := getDB(ctx, r.db).Omit("Roles.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Preload("Roles").First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Preload("Roles").Where("email = ?", email).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// ExistsByEmail 包含已软删除的用户,与唯一索引保持一致
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Unscoped().Model(&UserModel{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询邮箱失败")
	}
	return count > 0, nil
}

func (r *userRepository) FindRoleByName(ctx context.Context, name user.RoleName) (*user.Role, error) {
	var model RoleModel
	if err := getDB(ctx, r.db).Where("name = ?", string(name)).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "查询角色失败")
	}
	return &user.Role{ID: model.ID, Name: user.RoleName(model.Name)}, nil
}

func toUserModel(u *user.User) *UserModel {
	roles := make([]RoleModel, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, RoleModel{ID: r.ID, Name: string(r.Name)})
	}

	return &UserModel{
		ID:              u.ID,
		Email:           u.Email,
		Password:        u.Password,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           roles,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toUserEntity(model *UserModel) *user.User {
	roles := make([]user.Role, 0, len(model.Roles))
	for _, r := range model.Roles {
		roles = append(roles, user.Role{ID: r.ID, Name: user.RoleName(r.Name)})
	}

	return &user.User{
		ID:              model.ID,
		Email:           model.Email,
		Password:        model.Password,
		FirstName:       model.FirstName,
		LastName:        model.LastName,
		ShippingAddress: model.ShippingAddress,
		Roles:           roles,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
