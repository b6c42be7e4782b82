package book

// SearchParameters 搜索参数,每个字段接受多个候选值
// 字段内为"或",字段之间为"与"
type SearchParameters struct {
	Authors      []string
	Titles       []string
	ISBNs        []string
	Descriptions []string
	CoverImages  []string
	Prices       []string
}

// IsEmpty 所有字段都为空
func (p SearchParameters) IsEmpty() bool {
	return len(p.fields()) == 0
}

// fields 非空字段,顺序固定
func (p SearchParameters) fields() []fieldValues {
	all := []fieldValues{
		{FieldAuthor, p.Authors},
		{FieldTitle, p.Titles},
		{FieldISBN, p.ISBNs},
		{FieldDescription, p.Descriptions},
		{FieldCoverImage, p.CoverImages},
		{FieldPrice, p.Prices},
	}

	nonEmpty := all[:0]
	for _, f := range all {
		if len(f.values) > 0 {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return nonEmpty
}

type fieldValues struct {
	key    string
	values []string
}

// SpecificationBuilder 把搜索参数组装成Specification
type SpecificationBuilder struct {
	registry *ProviderRegistry
}

// NewSpecificationBuilder 创建构建器
func NewSpecificationBuilder(registry *ProviderRegistry) *SpecificationBuilder {
	return &SpecificationBuilder{registry: registry}
}

// Build 非空字段的条件取"与",全部为空时返回MatchAll
func (b *SpecificationBuilder) Build(params SearchParameters) (Specification, error) {
	var specs []Specification
	for _, f := range params.fields() {
		provider, err := b.registry.GetProvider(f.key)
		if err != nil {
			return nil, err
		}
		specs = append(specs, provider.Specification(f.values))
	}
	return And(specs...), nil
}
