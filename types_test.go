package glkit_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/glkit"
)

func assertVec(t *testing.T, want, got glkit.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
}

func TestVec2(t *testing.T) {
	a := glkit.Vec2{X: 3, Y: 4}
	assert.Equal(t, float32(5), a.Len())
	assert.Equal(t, glkit.Vec2{X: 4, Y: 6}, a.Add(glkit.Vec2{X: 1, Y: 2}))
	assert.Equal(t, glkit.Vec2{X: 2, Y: 2}, a.Sub(glkit.Vec2{X: 1, Y: 2}))
	assert.Equal(t, glkit.Vec2{X: 6, Y: 8}, a.Mul(2))
	assertVec(t, glkit.Vec2{X: -4, Y: 3}, a.Rotate(math32.Pi/2))
}

func TestRect(t *testing.T) {
	r := glkit.Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Contains(glkit.Vec2{X: 5, Y: 5}))
	assert.False(t, r.Contains(glkit.Vec2{X: 10, Y: 5}))
	assert.True(t, r.Intersects(glkit.Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.False(t, r.Intersects(glkit.Rect{X: 10, Y: 0, W: 5, H: 5}))
	assert.Equal(t, glkit.Rect{X: 5, Y: 5, W: 5, H: 5}, r.Intersect(glkit.Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.Equal(t, float32(0), r.Intersect(glkit.Rect{X: 20, Y: 20, W: 1, H: 1}).W)
	assert.Equal(t, [4]float32{0, 0, 10, 10}, r.Corners())
}

func TestColors(t *testing.T) {
	assert.Equal(t, glkit.ColorRed, glkit.RGBA(255, 0, 0, 255))
	assert.Equal(t, glkit.ColorBlue, glkit.RGBAf(0, 0, 1, 1))
	assert.Equal(t, glkit.RGBA(128, 0, 0, 255), glkit.RGBAf(0.5, -1, 0, 2))

	r, g, b, a := glkit.UnpackRGBA(glkit.RGBA(1, 2, 3, 4))
	assert.Equal(t, []uint8{1, 2, 3, 4}, []uint8{r, g, b, a})
	assert.Equal(t, [4]float32{1, 0, 0, 1}, glkit.UnpackRGBAf(glkit.ColorRed))
}

func TestMat3(t *testing.T) {
	p := glkit.Vec2{X: 1, Y: 0}
	assert.Equal(t, p, glkit.Identity3().Apply(p))
	assertVec(t, glkit.Vec2{X: 11, Y: 20}, glkit.Translate3(glkit.Vec2{X: 10, Y: 20}).Apply(p))
	assertVec(t, glkit.Vec2{X: 0, Y: 1}, glkit.Rotate3(math32.Pi/2).Apply(p))
	assertVec(t, glkit.Vec2{X: 3, Y: 0}, glkit.Scale3(glkit.Vec2{X: 3, Y: 2}).Apply(p))

	// Mul applies the right operand first.
	m := glkit.Translate3(glkit.Vec2{X: 10}).Mul(glkit.Scale3(glkit.Vec2{X: 2, Y: 2}))
	assertVec(t, glkit.Vec2{X: 12, Y: 0}, m.Apply(p))
	assert.Equal(t, [3]float32{10, 0, 1}, m.Column(2))

	o := glkit.Ortho3(200, 100)
	assertVec(t, glkit.Vec2{X: -1, Y: 1}, o.Apply(glkit.Vec2{}))
	assertVec(t, glkit.Vec2{X: 1, Y: -1}, o.Apply(glkit.Vec2{X: 200, Y: 100}))
}
