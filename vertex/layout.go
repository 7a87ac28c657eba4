package vertex

import (
	"fmt"
	"slices"
)

// Override replaces the storage type of the expanded attribute at Index.
type Override struct {
	Index int
	Type  BaseType
}

// LayoutOption configures NewLayout.
type LayoutOption func(*layoutConfig)

type stepRate struct {
	index int
	rate  uint32
}

type layoutConfig struct {
	overrides     []Override
	normalized    []int
	passAsInteger []int
	stepRates     []stepRate
}

// WithTypeOverride stores the attribute at index as b instead of the type
// the shader reports. Overrides change the attribute's size and therefore the
// offsets of everything after it.
func WithTypeOverride(index int, b BaseType) LayoutOption {
	return func(c *layoutConfig) {
		c.overrides = append(c.overrides, Override{Index: index, Type: b})
	}
}

// WithOverrides adds a list of type overrides. Order does not matter.
func WithOverrides(overrides ...Override) LayoutOption {
	return func(c *layoutConfig) {
		c.overrides = append(c.overrides, overrides...)
	}
}

// WithNormalized marks integer attributes whose values are mapped to [0,1]
// (or [-1,1] when signed) on fetch.
func WithNormalized(indices ...int) LayoutOption {
	return func(c *layoutConfig) {
		c.normalized = append(c.normalized, indices...)
	}
}

// WithPassAsInteger marks attributes that reach the shader as integers
// rather than being converted to floats.
func WithPassAsInteger(indices ...int) LayoutOption {
	return func(c *layoutConfig) {
		c.passAsInteger = append(c.passAsInteger, indices...)
	}
}

// WithInstanceStepRate sets how many instances are drawn before the
// attribute advances. Zero advances per vertex.
func WithInstanceStepRate(index int, rate uint32) LayoutOption {
	return func(c *layoutConfig) {
		c.stepRates = append(c.stepRates, stepRate{index: index, rate: rate})
	}
}

// Layout is a packed, strided vertex layout. It is immutable once built and
// may be shared by any number of buffers.
type Layout struct {
	attrs  []Attribute
	stride int
}

// NewLayout expands the reflected shader inputs into one Attribute per
// location slot, applies the options, and packs the result tightly in
// declaration order. No layout is returned on error.
func NewLayout(inputs []ShaderAttribute, opts ...LayoutOption) (*Layout, error) {
	var cfg layoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	total := 0
	for i, in := range inputs {
		if !in.Type.valid() {
			return nil, fmt.Errorf("vertex: shader attribute %d (%s) has type %v: %w", i, in.Name, in.Type, ErrInvalidType)
		}
		total += in.Coverage()
	}

	overrides, err := sortedOverrides(cfg.overrides, total)
	if err != nil {
		return nil, err
	}

	l := &Layout{attrs: make([]Attribute, 0, total)}
	next := 0
	for _, in := range inputs {
		loc := max(in.Location, next)
		cols := in.Type.Locations()
		for k := 0; k < in.Coverage(); k++ {
			a := Attribute{
				Name:     in.Name,
				Base:     in.Type.Base,
				Rows:     in.Type.Rows,
				Location: loc + k,
				Offset:   l.stride,
			}
			if cols > 1 || in.ArrayCount > 1 {
				a.Name = fmt.Sprintf("%s[%d]", in.Name, k)
			}
			if len(overrides) > 0 && overrides[0].Index == len(l.attrs) {
				a.Base = overrides[0].Type
				overrides = overrides[1:]
			}
			l.stride += a.Size()
			l.attrs = append(l.attrs, a)
		}
		next = loc + in.Coverage()
	}

	for _, i := range cfg.normalized {
		if i < 0 || i >= total {
			return nil, indexError("normalized attribute", i, total)
		}
		l.attrs[i].Normalized = true
	}
	for _, i := range cfg.passAsInteger {
		if i < 0 || i >= total {
			return nil, indexError("integer attribute", i, total)
		}
		l.attrs[i].PassAsInteger = true
	}
	for _, s := range cfg.stepRates {
		if s.index < 0 || s.index >= total {
			return nil, indexError("instanced attribute", s.index, total)
		}
		l.attrs[s.index].InstanceStepRate = s.rate
	}
	return l, nil
}

// sortedOverrides returns the overrides in ascending index order after
// checking each index names an expanded attribute exactly once.
func sortedOverrides(in []Override, total int) ([]Override, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Override) int { return a.Index - b.Index })
	for i, o := range out {
		if o.Index < 0 || o.Index >= total {
			return nil, indexError("override", o.Index, total)
		}
		if o.Type.Size() == 0 {
			return nil, fmt.Errorf("vertex: override %d has type %v: %w", o.Index, o.Type, ErrInvalidType)
		}
		if i > 0 && out[i-1].Index == o.Index {
			return nil, fmt.Errorf("vertex: attribute %d: %w", o.Index, ErrDuplicateOverride)
		}
	}
	return out, nil
}

// Stride returns the number of bytes per vertex.
func (l *Layout) Stride() int { return l.stride }

// Len returns the number of expanded attributes.
func (l *Layout) Len() int { return len(l.attrs) }

// Attribute returns the attribute at index i.
func (l *Layout) Attribute(i int) (Attribute, error) {
	if i < 0 || i >= len(l.attrs) {
		return Attribute{}, indexError("attribute", i, len(l.attrs))
	}
	return l.attrs[i], nil
}

// Attributes returns a copy of the attribute list.
func (l *Layout) Attributes() []Attribute {
	return slices.Clone(l.attrs)
}

// Index returns the index of the first attribute with the given name.
// Matrix columns and array elements are named "name[k]".
func (l *Layout) Index(name string) (int, bool) {
	for i, a := range l.attrs {
		if a.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Offset returns the byte offset of attribute attr of vertex v within a
// buffer using this layout.
func (l *Layout) Offset(v, attr int) (int, error) {
	if attr < 0 || attr >= len(l.attrs) {
		return 0, indexError("attribute", attr, len(l.attrs))
	}
	return vertexOffset(v, l.stride, l.attrs[attr].Offset)
}

// Size returns the number of bytes n vertices occupy.
func (l *Layout) Size(n int) (int, error) { return bufferSize(n, l.stride) }
