package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks() []*Book {
	return []*Book{
		{ID: 1, Title: "Effective Java", Author: "Joshua Bloch", ISBN: "9780134685991", Price: decimal.RequireFromString("45.00"), CoverImage: "ej.png"},
		{ID: 2, Title: "Java Puzzlers", Author: "Joshua Bloch", ISBN: "9780321336781", Price: decimal.RequireFromString("29.90")},
		{ID: 3, Title: "Clean Code", Author: "Robert Martin", ISBN: "9780132350884", Price: decimal.RequireFromString("29.90")},
		{ID: 4, Title: "effective java", Author: "joshua bloch", ISBN: "0000000000000", Price: decimal.RequireFromString("10")},
	}
}

func filter(spec Specification, books []*Book) []uint {
	var ids []uint
	for _, b := range books {
		if spec.IsSatisfiedBy(b) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func newBuilder() *SpecificationBuilder {
	return NewSpecificationBuilder(NewProviderRegistry(DefaultProviders()...))
}

func TestSpecificationBuilder_Build(t *testing.T) {
	books := sampleBooks()

	tests := []struct {
		name   string
		params SearchParameters
		want   []uint
	}{
		{
			name:   "全部为空返回所有图书",
			params: SearchParameters{},
			want:   []uint{1, 2, 3, 4},
		},
		{
			name:   "作者与书名取交集",
			params: SearchParameters{Authors: []string{"Joshua Bloch"}, Titles: []string{"Effective Java"}},
			want:   []uint{1},
		},
		{
			name:   "同一字段多个值取并集",
			params: SearchParameters{Titles: []string{"Clean Code", "Java Puzzlers"}},
			want:   []uint{2, 3},
		},
		{
			name:   "匹配区分大小写",
			params: SearchParameters{Authors: []string{"joshua bloch"}},
			want:   []uint{4},
		},
		{
			name:   "价格按数值比较",
			params: SearchParameters{Prices: []string{"29.9"}},
			want:   []uint{2, 3},
		},
		{
			name:   "价格与作者组合",
			params: SearchParameters{Prices: []string{"29.90"}, Authors: []string{"Robert Martin"}},
			want:   []uint{3},
		},
		{
			name:   "无法解析的价格不匹配任何图书",
			params: SearchParameters{Prices: []string{"abc"}},
			want:   nil,
		},
		{
			name:   "封面字段",
			params: SearchParameters{CoverImages: []string{"ej.png"}},
			want:   []uint{1},
		},
	}

	builder := newBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := builder.Build(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter(spec, books))
		})
	}
}

func TestSpecificationBuilder_EmptyReturnsMatchAll(t *testing.T) {
	spec, err := newBuilder().Build(SearchParameters{})
	require.NoError(t, err)
	assert.IsType(t, MatchAllSpecification{}, spec)
}

func TestSpecificationBuilder_MissingProvider(t *testing.T) {
	builder := NewSpecificationBuilder(NewProviderRegistry(fieldProvider{field: FieldAuthor}))

	_, err := builder.Build(SearchParameters{Titles: []string{"Effective Java"}})
	assert.ErrorIs(t, err, ErrNoSpecificationProvider)
}

func TestProviderRegistry_GetProvider(t *testing.T) {
	registry := NewProviderRegistry(DefaultProviders()...)

	for _, key := range []string{FieldAuthor, FieldTitle, FieldISBN, FieldDescription, FieldCoverImage, FieldPrice} {
		p, err := registry.GetProvider(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, p.Key())
	}

	_, err := registry.GetProvider("publisher")
	assert.ErrorIs(t, err, ErrNoSpecificationProvider)
}

func TestAnd(t *testing.T) {
	a := FieldIn{Field: FieldAuthor, Values: []string{"Joshua Bloch"}}
	b := FieldIn{Field: FieldTitle, Values: []string{"Effective Java"}}
	c := FieldIn{Field: FieldPrice, Values: []string{"45"}}

	t.Run("嵌套And被展开", func(t *testing.T) {
		spec := And(And(a, b), c)
		and, ok := spec.(AndSpecification)
		require.True(t, ok)
		assert.Len(t, and.Specs, 3)
	})

	t.Run("单个条件原样返回", func(t *testing.T) {
		assert.Equal(t, a, And(a, MatchAll()))
	})

	t.Run("交换律与结合律", func(t *testing.T) {
		books := sampleBooks()
		assert.Equal(t, filter(And(a, And(b, c)), books), filter(And(And(c, a), b), books))
	})
}
