package book

// Specification 图书查询条件
// 内存中通过IsSatisfiedBy求值,持久层把它翻译为SQL条件
type Specification interface {
	IsSatisfiedBy(b *Book) bool
}

// 可搜索字段
const (
	FieldAuthor      = "author"
	FieldTitle       = "title"
	FieldISBN        = "isbn"
	FieldDescription = "description"
	FieldCoverImage  = "coverImage"
	FieldPrice       = "price"
)

// FieldIn 字段值属于Values之一即满足
// 字符串精确匹配(区分大小写),price按数值比较("29.9"与29.90相等)
type FieldIn struct {
	Field  string
	Values []string
}

func (s FieldIn) IsSatisfiedBy(b *Book) bool {
	if s.Field == FieldPrice {
		for _, v := range s.Values {
			if p, ok := parsePrice(v); ok && p.Equal(b.Price) {
				return true
			}
		}
		return false
	}

	actual := fieldValue(b, s.Field)
	for _, v := range s.Values {
		if v == actual {
			return true
		}
	}
	return false
}

// AndSpecification 所有子条件同时满足
type AndSpecification struct {
	Specs []Specification
}

func (s AndSpecification) IsSatisfiedBy(b *Book) bool {
	for _, spec := range s.Specs {
		if !spec.IsSatisfiedBy(b) {
			return false
		}
	}
	return true
}

// And 组合多个条件,嵌套的And会被展开
// 没有条件时返回MatchAll,只有一个条件时原样返回
func And(specs ...Specification) Specification {
	flat := make([]Specification, 0, len(specs))
	for _, spec := range specs {
		switch s := spec.(type) {
		case nil, MatchAllSpecification:
		case AndSpecification:
			flat = append(flat, s.Specs...)
		default:
			flat = append(flat, s)
		}
	}

	switch len(flat) {
	case 0:
		return MatchAll()
	case 1:
		return flat[0]
	default:
		return AndSpecification{Specs: flat}
	}
}

// MatchAllSpecification 不附加任何条件
type MatchAllSpecification struct{}

func (MatchAllSpecification) IsSatisfiedBy(*Book) bool { return true }

// MatchAll 匹配全部图书
func MatchAll() Specification {
	return MatchAllSpecification{}
}

func fieldValue(b *Book, field string) string {
	switch field {
	case FieldAuthor:
		return b.Author
	case FieldTitle:
		return b.Title
	case FieldISBN:
		return b.ISBN
	case FieldDescription:
		return b.Description
	case FieldCoverImage:
		return b.CoverImage
	case FieldPrice:
		return b.Price.String()
	default:
		return ""
	}
}
