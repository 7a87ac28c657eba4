package glkit

import "github.com/chewxy/math32"

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product.
func (v Vec2) MulVec(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Intersect returns the overlap of two rectangles, zero-sized when they
// do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.X+r.W, other.X+other.W), min(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Corners returns the rectangle as (x1, y1, x2, y2).
func (r Rect) Corners() [4]float32 {
	return [4]float32{r.X, r.Y, r.X + r.W, r.Y + r.H}
}

// Color constants (RGBA packed as 0xAABBGGRR, byte order R,G,B,A in memory)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorCyan        uint32 = 0xFFFFFF00
	ColorMagenta     uint32 = 0xFFFF00FF
	ColorGray        uint32 = 0xFF808080
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(unitToByte(r), unitToByte(g), unitToByte(b), unitToByte(a))
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// UnpackRGBAf extracts components scaled to 0.0-1.0.
func UnpackRGBAf(c uint32) [4]float32 {
	r, g, b, a := UnpackRGBA(c)
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

func unitToByte(v float32) uint8 {
	return uint8(math32.Round(clampf(v, 0, 1) * 255))
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	return min(max(v, minVal), maxVal)
}

// Mat3 is a column-major 3x3 matrix for 2D affine transforms, laid out the
// way glUniformMatrix3fv expects with transpose false.
type Mat3 [9]float32

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Translate3 returns a translation by t.
func Translate3(t Vec2) Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, t.X, t.Y, 1}
}

// Rotate3 returns a counter-clockwise rotation by angle radians.
func Rotate3(angle float32) Mat3 {
	s, c := math32.Sincos(angle)
	return Mat3{c, s, 0, -s, c, 0, 0, 0, 1}
}

// Scale3 returns a scale by s.
func Scale3(s Vec2) Mat3 {
	return Mat3{s.X, 0, 0, 0, s.Y, 0, 0, 0, 1}
}

// Ortho3 maps pixel coordinates with a top-left origin to clip space.
func Ortho3(width, height float32) Mat3 {
	return Mat3{2 / width, 0, 0, 0, -2 / height, 0, -1, 1, 1}
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[k*3+row] * o[col*3+k]
			}
			r[col*3+row] = sum
		}
	}
	return r
}

// Apply transforms the point p.
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[3]*p.Y + m[6],
		Y: m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// Column returns column c as a 3-vector.
func (m Mat3) Column(c int) [3]float32 {
	return [3]float32{m[c*3], m[c*3+1], m[c*3+2]}
}
