package category

import (
	"context"
)

// Service 分类领域服务
type Service interface {
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	// ResolveIDs 过滤出真实存在的分类ID(保持入参顺序、去重)
	// 图书保存时未知的分类ID被静默丢弃
	ResolveIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c := NewCategory(name, description)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Rename(name, description)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ResolveIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}

	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	exists := make(map[uint]struct{}, len(found))
	for _, c := range found {
		exists[c.ID] = struct{}{}
	}

	resolved := make([]uint, 0, len(found))
	for _, id := range ids {
		if _, ok := exists[id]; ok {
			resolved = append(resolved, id)
			delete(exists, id)
		}
	}
	return resolved, nil
}
