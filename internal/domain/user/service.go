package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// Service 用户领域服务
// 包含不属于单个实体的逻辑:密码加密、邮箱唯一性、默认角色
type Service interface {
	// Register 注册用户,默认分配USER角色
	// 购物车由应用层在同一事务中创建
	Register(ctx context.Context, cmd RegisterCommand) (*User, error)

	// Authenticate 校验邮箱和密码
	// 邮箱不存在和密码错误返回同一个错误,不暴露邮箱是否注册
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

// RegisterCommand 注册参数
type RegisterCommand struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务,cost<=0时使用bcrypt.DefaultCost
func NewService(repo Repository, cost int) Service {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{repo: repo, cost: cost}
}

func (s *service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	if cmd.Password != cmd.RepeatPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	role, err := s.repo.FindRoleByName(ctx, RoleUser)
	if err != nil {
		return nil, err
	}

	u := NewUser(cmd.Email, string(hashed), cmd.FirstName, cmd.LastName, cmd.ShippingAddress, *role)

	// 并发注册同一邮箱时由唯一索引兜底
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return u, nil
}
