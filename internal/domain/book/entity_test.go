package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("价格必须大于0", func(t *testing.T) {
		_, err := NewBook("t", "a", "isbn", decimal.Zero, "", "", nil)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("价格超出DECIMAL(10,2)范围", func(t *testing.T) {
		tests := []struct {
			name  string
			price string
		}{
			{"三位小数", "1.005"},
			{"等于1亿", "100000000"},
			{"超过1亿", "123456789.5"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewBook("t", "a", "isbn", decimal.RequireFromString(tt.price), "", "", nil)
				assert.ErrorIs(t, err, ErrPriceOutOfRange)
				assert.NotErrorIs(t, err, ErrInvalidPrice)
			})
		}
	})

	t.Run("末尾多余的零不算小数位", func(t *testing.T) {
		_, err := NewBook("t", "a", "isbn", decimal.RequireFromString("99999999.990"), "", "", nil)
		assert.NoError(t, err)
	})

	t.Run("创建成功", func(t *testing.T) {
		b, err := NewBook("Effective Java", "Joshua Bloch", "9780134685991", decimal.RequireFromString("45.00"), "desc", "cover.png", []uint{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2}, b.CategoryIDs)
		assert.True(t, b.HasCategory(2))
		assert.False(t, b.HasCategory(3))
	})
}

func TestBook_Replace(t *testing.T) {
	b, err := NewBook("Old", "Author", "111", decimal.NewFromInt(10), "old desc", "old.png", []uint{1, 2})
	require.NoError(t, err)

	err = b.Replace("New", "Other", "222", decimal.NewFromInt(20), "", "", []uint{3})
	require.NoError(t, err)

	assert.Equal(t, "New", b.Title)
	assert.Equal(t, "Other", b.Author)
	assert.Equal(t, "222", b.ISBN)
	assert.Empty(t, b.Description, "标量字段整体覆盖")
	assert.Equal(t, []uint{3}, b.CategoryIDs, "分类集合整体替换")

	assert.ErrorIs(t, b.Replace("x", "y", "z", decimal.NewFromInt(-1), "", "", nil), ErrInvalidPrice)
}

func TestListParams_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{"默认值", ListParams{}, ListParams{Page: 1, PageSize: DefaultPageSize, SortBy: SortByID}},
		{"超过上限", ListParams{Page: 3, PageSize: 500, SortBy: SortByPriceDesc}, ListParams{Page: 3, PageSize: MaxPageSize, SortBy: SortByPriceDesc}},
		{"非法排序回退为ID", ListParams{Page: 1, PageSize: 10, SortBy: "rating"}, ListParams{Page: 1, PageSize: 10, SortBy: SortByID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.want, p)
		})
	}

	assert.Equal(t, 40, ListParams{Page: 3, PageSize: 20}.Offset())
}
