// Package vertex derives packed vertex-buffer layouts from shader reflection
// and computes byte offsets into CPU-side vertex memory.
//
// A Layout is built once per shader (or shader plus override spec) and shared
// by every buffer that stores vertices for that shader. Layouts and
// Partitions are never modified after construction.
package vertex

import (
	"fmt"
	"strings"
)

// BaseType is the scalar storage type of a vertex attribute component.
type BaseType uint8

const (
	Byte BaseType = iota
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
	Half
	Float
	Double
)

var baseTypeSizes = [...]int{
	Byte:          1,
	UnsignedByte:  1,
	Short:         2,
	UnsignedShort: 2,
	Int:           4,
	UnsignedInt:   4,
	Half:          2,
	Float:         4,
	Double:        8,
}

var baseTypeNames = [...]string{
	Byte:          "byte",
	UnsignedByte:  "ubyte",
	Short:         "short",
	UnsignedShort: "ushort",
	Int:           "int",
	UnsignedInt:   "uint",
	Half:          "half",
	Float:         "float",
	Double:        "double",
}

// Size returns the size of one component in bytes.
func (b BaseType) Size() int {
	if int(b) >= len(baseTypeSizes) {
		return 0
	}
	return baseTypeSizes[b]
}

// IsInteger reports whether the type stores integer components.
func (b BaseType) IsInteger() bool {
	return b <= UnsignedInt
}

// IsSigned reports whether the type stores signed components.
func (b BaseType) IsSigned() bool {
	switch b {
	case UnsignedByte, UnsignedShort, UnsignedInt:
		return false
	}
	return true
}

func (b BaseType) String() string {
	if int(b) >= len(baseTypeNames) {
		return fmt.Sprintf("BaseType(%d)", b)
	}
	return baseTypeNames[b]
}

// MarshalText implements encoding.TextMarshaler.
func (b BaseType) MarshalText() ([]byte, error) {
	if int(b) >= len(baseTypeNames) {
		return nil, fmt.Errorf("vertex: unknown base type %d", b)
	}
	return []byte(baseTypeNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// produced by String plus a few common aliases ("float32", "f16", "uint8").
func (b *BaseType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if alias, ok := baseTypeAliases[name]; ok {
		*b = alias
		return nil
	}
	for i, n := range baseTypeNames {
		if n == name {
			*b = BaseType(i)
			return nil
		}
	}
	return fmt.Errorf("vertex: unknown base type %q", text)
}

var baseTypeAliases = map[string]BaseType{
	"int8":    Byte,
	"uint8":   UnsignedByte,
	"int16":   Short,
	"uint16":  UnsignedShort,
	"int32":   Int,
	"uint32":  UnsignedInt,
	"f16":     Half,
	"float16": Half,
	"f32":     Float,
	"float32": Float,
	"f64":     Double,
	"float64": Double,
}

// Type is the semantic shape of a shader input: a scalar, a vector of Rows
// components, or a matrix of Columns column vectors of Rows components each.
type Type struct {
	Base    BaseType
	Rows    int
	Columns int
}

// Scalar returns a single-component type.
func Scalar(b BaseType) Type { return Type{Base: b, Rows: 1, Columns: 1} }

// Vec returns an n-component vector type.
func Vec(b BaseType, n int) Type { return Type{Base: b, Rows: n, Columns: 1} }

// Mat returns a matrix type with cols columns of rows components.
// Mat(Float, 3, 3) is a mat3, Mat(Float, 4, 2) a mat4x2.
func Mat(b BaseType, cols, rows int) Type { return Type{Base: b, Rows: rows, Columns: cols} }

// Locations returns the number of consecutive attribute slots one element of
// the type occupies. Every matrix column takes a slot of its own.
func (t Type) Locations() int {
	if t.Columns < 1 {
		return 1
	}
	return t.Columns
}

// Size returns the packed size of one element of the type in bytes.
func (t Type) Size() int {
	return t.Base.Size() * t.Rows * t.Locations()
}

func (t Type) valid() bool {
	return t.Rows >= 1 && t.Rows <= 4 && t.Locations() <= 4 && t.Base.Size() > 0
}

func (t Type) String() string {
	switch {
	case t.Columns > 1:
		return fmt.Sprintf("mat%dx%d<%s>", t.Columns, t.Rows, t.Base)
	case t.Rows > 1:
		return fmt.Sprintf("vec%d<%s>", t.Rows, t.Base)
	default:
		return t.Base.String()
	}
}

// ShaderAttribute is one active vertex input as reported by shader
// reflection, in declaration order.
type ShaderAttribute struct {
	Name       string
	Type       Type
	ArrayCount int // 0 or 1 for non-array inputs
	Location   int // first slot; raised to the next free slot if already taken
}

// Coverage returns the number of consecutive slots the input occupies.
func (a ShaderAttribute) Coverage() int {
	n := a.ArrayCount
	if n < 1 {
		n = 1
	}
	return n * a.Type.Locations()
}

// Attribute describes one packed attribute slot of a Layout.
type Attribute struct {
	Name     string
	Base     BaseType
	Rows     int // components, 1-4
	Location int
	Offset   int // bytes from the start of the vertex

	// Interpretation flags. They change how the pipeline fetches the bytes,
	// never where they live.
	Normalized       bool
	PassAsInteger    bool
	InstanceStepRate uint32
}

// Size returns the attribute's size in bytes.
func (a Attribute) Size() int {
	return a.Base.Size() * a.Rows
}
