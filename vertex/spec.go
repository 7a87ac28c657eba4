package vertex

// LayoutSpec is a declarative set of per-attribute overrides and an optional
// block partition, usually loaded from a config file:
//
//	[[override]]
//	index = 2
//	type = "half"
//
//	[[override]]
//	index = 1
//	type = "ubyte"
//	normalized = true
//
//	[[block]]
//	attributes = [0]
//
//	[[block]]
//	attributes = [1, 2]
type LayoutSpec struct {
	Overrides []AttributeSpec `toml:"override"`
	Blocks    []BlockSpec     `toml:"block"`
}

// AttributeSpec overrides one expanded attribute.
type AttributeSpec struct {
	Index      int       `toml:"index"`
	Type       *BaseType `toml:"type,omitempty"`
	Normalized bool      `toml:"normalized,omitempty"`
	Integer    bool      `toml:"integer,omitempty"`
	StepRate   uint32    `toml:"step_rate,omitempty"`
}

// BlockSpec lists the attributes stored in one block buffer.
type BlockSpec struct {
	Attributes []int `toml:"attributes"`
}

// WithSpec applies every override in s.
func WithSpec(s LayoutSpec) LayoutOption {
	return func(c *layoutConfig) {
		for _, o := range s.Overrides {
			if o.Type != nil {
				c.overrides = append(c.overrides, Override{Index: o.Index, Type: *o.Type})
			}
			if o.Normalized {
				c.normalized = append(c.normalized, o.Index)
			}
			if o.Integer {
				c.passAsInteger = append(c.passAsInteger, o.Index)
			}
			if o.StepRate != 0 {
				c.stepRates = append(c.stepRates, stepRate{index: o.Index, rate: o.StepRate})
			}
		}
	}
}

// Partitioned reports whether the spec declares blocks.
func (s LayoutSpec) Partitioned() bool { return len(s.Blocks) > 0 }

// Partition builds the spec's block partition of l.
func (s LayoutSpec) Partition(l *Layout) (*Partition, error) {
	blocks := make([][]int, len(s.Blocks))
	for i, b := range s.Blocks {
		blocks[i] = b.Attributes
	}
	return NewPartition(l, blocks...)
}
