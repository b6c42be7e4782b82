package book

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Provider 单个搜索字段的条件提供者
type Provider interface {
	// Key 对应的搜索字段
	Key() string
	// Specification 字段值属于values之一(values非空,由Builder保证)
	Specification(values []string) Specification
}

// fieldProvider 字符串字段,精确匹配
type fieldProvider struct {
	field string
}

func (p fieldProvider) Key() string { return p.field }

func (p fieldProvider) Specification(values []string) Specification {
	return FieldIn{Field: p.field, Values: values}
}

// priceProvider 价格字段
// 无法解析为数字的值被丢弃,其余规范化为decimal字符串
type priceProvider struct{}

func (priceProvider) Key() string { return FieldPrice }

func (priceProvider) Specification(values []string) Specification {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		if p, ok := parsePrice(v); ok {
			normalized = append(normalized, p.String())
		}
	}
	return FieldIn{Field: FieldPrice, Values: normalized}
}

func parsePrice(v string) (decimal.Decimal, bool) {
	p, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, false
	}
	return p, true
}

// DefaultProviders 六个可搜索字段的提供者
func DefaultProviders() []Provider {
	return []Provider{
		fieldProvider{field: FieldAuthor},
		fieldProvider{field: FieldTitle},
		fieldProvider{field: FieldISBN},
		fieldProvider{field: FieldDescription},
		fieldProvider{field: FieldCoverImage},
		priceProvider{},
	}
}

// ProviderRegistry 按字段名查找条件提供者
// 启动时构建,之后只读,可并发使用
type ProviderRegistry struct {
	providers map[string]Provider
}

// NewProviderRegistry 创建注册表,同一Key后注册的覆盖先注册的
func NewProviderRegistry(providers ...Provider) *ProviderRegistry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Key()] = p
	}
	return &ProviderRegistry{providers: m}
}

// GetProvider 未注册的Key返回ErrNoSpecificationProvider
func (r *ProviderRegistry) GetProvider(key string) (Provider, error) {
	p, ok := r.providers[key]
	if !ok {
		return nil, ErrNoSpecificationProvider.WithMessage("没有对应的搜索条件提供者: %s", key)
	}
	return p, nil
}
