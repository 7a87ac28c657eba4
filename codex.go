package glkit

import (
	"fmt"
	"slices"

	"github.com/go-theft-auto/glkit/vertex"
)

// Codex packs one primitive into vertex memory. The set is closed: each
// implementation writes a fixed group of named attributes, looked up by
// name in the target layout. Attributes the layout lacks are skipped, as
// happens when a shader compiler drops an unused input.
type Codex interface {
	// VertexCount returns how many vertices the codex writes.
	VertexCount() int
	attributes() []vertex.ShaderAttribute
	pack(d *vertex.Data, first int) error
}

// Attribute names written by the codices.
const (
	AttrPosition = "position"
	AttrUV       = "uv"
	AttrColor    = "color"
	AttrModel    = "model"
)

// quadIndices triangulates a quad written in corner order.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// quadCorners are unit-square corners: top-left, top-right, bottom-right,
// bottom-left.
var quadCorners = [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

var (
	absoluteImageAttrs = []vertex.ShaderAttribute{
		{Name: AttrPosition, Type: vertex.Vec(vertex.Float, 2), Location: 0},
		{Name: AttrUV, Type: vertex.Vec(vertex.Float, 2), Location: 1},
		{Name: AttrColor, Type: vertex.Vec(vertex.Float, 4), Location: 2},
	}
	sprite2DAttrs = []vertex.ShaderAttribute{
		{Name: AttrPosition, Type: vertex.Vec(vertex.Float, 2), Location: 0},
		{Name: AttrUV, Type: vertex.Vec(vertex.Float, 2), Location: 1},
		{Name: AttrColor, Type: vertex.Vec(vertex.Float, 4), Location: 2},
		{Name: AttrModel, Type: vertex.Mat(vertex.Float, 3, 3), Location: 3},
	}
)

// CodexAttributes returns the shader inputs c writes, for building a
// layout when no shader reflection is at hand.
func CodexAttributes(c Codex) []vertex.ShaderAttribute {
	return slices.Clone(c.attributes())
}

// Pack writes c into d starting at vertex first.
func Pack(d *vertex.Data, first int, c Codex) error {
	if err := vertex.CheckWindow(first, c.VertexCount(), d.Len()); err != nil {
		return err
	}
	return c.pack(d, first)
}

// uvOrFull treats a zero UV rectangle as the whole texture.
func uvOrFull(r Rect) Rect {
	if r == (Rect{}) {
		return Rect{W: 1, H: 1}
	}
	return r
}

// setByName writes vals to the named attribute if the layout has it.
func setByName(d *vertex.Data, v int, name string, vals ...float32) error {
	a, ok := d.Layout().Index(name)
	if !ok {
		return nil
	}
	return d.SetFloat32s(v, a, vals...)
}

// AbsoluteImage is a textured quad in window pixels.
type AbsoluteImage struct {
	Dst   Rect
	UV    Rect // zero means the full texture
	Color uint32
}

func (AbsoluteImage) VertexCount() int { return 4 }

func (AbsoluteImage) attributes() []vertex.ShaderAttribute { return absoluteImageAttrs }

func (img AbsoluteImage) pack(d *vertex.Data, first int) error {
	uv := uvOrFull(img.UV)
	col := UnpackRGBAf(img.Color)
	for k, c := range quadCorners {
		v := first + k
		pos := Vec2{X: img.Dst.X + c.X*img.Dst.W, Y: img.Dst.Y + c.Y*img.Dst.H}
		if err := setByName(d, v, AttrPosition, pos.X, pos.Y); err != nil {
			return err
		}
		if err := setByName(d, v, AttrUV, uv.X+c.X*uv.W, uv.Y+c.Y*uv.H); err != nil {
			return err
		}
		if err := setByName(d, v, AttrColor, col[:]...); err != nil {
			return err
		}
	}
	return nil
}

// Sprite2D is a quad in local space placed by a model matrix, typically a
// TransformTree world transform. Anchor is the quad's pivot as a fraction
// of Size.
type Sprite2D struct {
	Size   Vec2
	Anchor Vec2
	UV     Rect
	Color  uint32
	Model  Mat3
}

func (Sprite2D) VertexCount() int { return 4 }

func (Sprite2D) attributes() []vertex.ShaderAttribute { return sprite2DAttrs }

func (s Sprite2D) pack(d *vertex.Data, first int) error {
	uv := uvOrFull(s.UV)
	col := UnpackRGBAf(s.Color)
	for k, c := range quadCorners {
		v := first + k
		pos := c.Sub(s.Anchor).MulVec(s.Size)
		if err := setByName(d, v, AttrPosition, pos.X, pos.Y); err != nil {
			return err
		}
		if err := setByName(d, v, AttrUV, uv.X+c.X*uv.W, uv.Y+c.Y*uv.H); err != nil {
			return err
		}
		if err := setByName(d, v, AttrColor, col[:]...); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			column := s.Model.Column(i)
			if err := setByName(d, v, matrixColumn(AttrModel, i), column[:]...); err != nil {
				return err
			}
		}
	}
	return nil
}

func matrixColumn(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
