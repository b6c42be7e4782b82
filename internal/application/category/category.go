package category

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

const cacheName = "category"

// CategoryDTO 分类
type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryDTO(c *category.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// Cache 分类的进程内缓存
// 单个分类放在LRU中,完整列表单独保存;任何写操作后整体失效
// 读库前记录generation,回填时generation已变化说明期间发生过写操作,丢弃读到的旧数据
type Cache struct {
	mu         sync.Mutex
	generation uint64
	byID       *lru.Cache[uint, CategoryDTO]
	all        *[]CategoryDTO
}

// NewCache size为LRU容量
func NewCache(size int) (*Cache, error) {
	byID, err := lru.New[uint, CategoryDTO](size)
	if err != nil {
		return nil, err
	}
	return &Cache{byID: byID}, nil
}

func (c *Cache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.byID.Purge()
	c.all = nil
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Cache) loadAll() ([]CategoryDTO, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.all == nil {
		return nil, false
	}
	return append([]CategoryDTO(nil), *c.all...), true
}

func (c *Cache) storeAll(generation uint64, list []CategoryDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return
	}
	c.all = &list
}

func (c *Cache) storeOne(generation uint64, dto CategoryDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return
	}
	c.byID.Add(dto.ID, dto)
}

// Service 分类用例
// 分类的五个操作都很薄,放在同一个结构中共享缓存
type Service struct {
	categoryService category.Service
	bookService     book.Service
	bookCache       application.BookCache
	cache           *Cache
	metrics         *metrics.Metrics
}

func NewService(
	categoryService category.Service,
	bookService book.Service,
	bookCache application.BookCache,
	cache *Cache,
	m *metrics.Metrics,
) *Service {
	return &Service{
		categoryService: categoryService,
		bookService:     bookService,
		bookCache:       bookCache,
		cache:           cache,
		metrics:         m,
	}
}

func (s *Service) Create(ctx context.Context, name, description string) (*CategoryDTO, error) {
	c, err := s.categoryService.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}

	s.cache.invalidate()
	dto := toCategoryDTO(c)
	return &dto, nil
}

// FindAll 返回的切片是缓存的副本
func (s *Service) FindAll(ctx context.Context) ([]CategoryDTO, error) {
	if cached, ok := s.cache.loadAll(); ok {
		s.metrics.ObserveCache(cacheName, true)
		return cached, nil
	}
	s.metrics.ObserveCache(cacheName, false)

	generation := s.cache.currentGeneration()
	categories, err := s.categoryService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		list[i] = toCategoryDTO(c)
	}
	s.cache.storeAll(generation, list)

	return append([]CategoryDTO(nil), list...), nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*CategoryDTO, error) {
	if dto, ok := s.cache.byID.Get(id); ok {
		s.metrics.ObserveCache(cacheName, true)
		return &dto, nil
	}
	s.metrics.ObserveCache(cacheName, false)

	generation := s.cache.currentGeneration()
	c, err := s.categoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toCategoryDTO(c)
	s.cache.storeOne(generation, dto)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, id uint, name, description string) (*CategoryDTO, error) {
	c, err := s.categoryService.UpdateCategory(ctx, id, name, description)
	if err != nil {
		return nil, err
	}

	s.cache.invalidate()
	dto := toCategoryDTO(c)
	return &dto, nil
}

func (s *Service) DeleteByID(ctx context.Context, id uint) error {
	if err := s.categoryService.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.cache.invalidate()
	return nil
}
