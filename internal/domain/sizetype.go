package domain

// SizeOption is one selectable size of a size type.
type SizeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SizeType is a size scheme shared by products, e.g. round cakes with
// 16/20/24cm options. The types collection is kept sorted by Order.
type SizeType struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Sizes []SizeOption `json:"sizes,omitempty"`
	Order float64      `json:"order"`
}

// SizesForProduct returns the type's size list narrowed by the
// product's own override set. An empty override keeps the full list;
// overrides that match nothing yield an empty list.
func (t *SizeType) SizesForProduct(p *Product) []SizeOption {
	if t == nil {
		return nil
	}
	if p == nil || len(p.Sizes) == 0 {
		return t.Sizes
	}
	allowed := make(map[string]struct{}, len(p.Sizes))
	for _, key := range p.Sizes {
		allowed[key] = struct{}{}
	}
	out := make([]SizeOption, 0, len(t.Sizes))
	for _, opt := range t.Sizes {
		if _, ok := allowed[opt.Key]; ok {
			out = append(out, opt)
		}
	}
	return out
}
