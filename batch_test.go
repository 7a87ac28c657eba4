package glkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit"
	"github.com/go-theft-auto/glkit/vertex"
)

func newBatch(t *testing.T) *glkit.SpriteBatch {
	t.Helper()
	l, err := vertex.NewLayout(glkit.CodexAttributes(glkit.Sprite2D{}))
	require.NoError(t, err)
	return glkit.NewSpriteBatch(l)
}

func TestSpriteBatchCommands(t *testing.T) {
	b := newBatch(t)
	quad := glkit.Sprite2D{Size: glkit.Vec2{X: 1, Y: 1}, Model: glkit.Identity3()}

	b.SetTexture(1)
	require.NoError(t, b.Add(quad))
	require.NoError(t, b.Add(quad))
	b.SetTexture(2)
	require.NoError(t, b.Add(quad))
	b.PushClipRect(glkit.Rect{X: 1, Y: 2, W: 3, H: 4})
	require.NoError(t, b.Add(quad))
	b.PopClipRect()
	b.Finalize()

	assert.Equal(t, 16, b.Vertices())
	assert.Len(t, b.Indices, 24)
	require.Len(t, b.Cmds, 3)

	assert.Equal(t, glkit.DrawCmd{ElemCount: 12, ClipRect: [4]float32{-1e9, -1e9, 1e9, 1e9}, TextureID: 1}, b.Cmds[0])
	assert.Equal(t, uint32(2), b.Cmds[1].TextureID)
	assert.Equal(t, uint32(8), b.Cmds[1].VertexOffset)
	assert.Equal(t, uint32(12), b.Cmds[1].IndexOffset)
	assert.Equal(t, [4]float32{1, 2, 4, 6}, b.Cmds[2].ClipRect)
	assert.Equal(t, uint32(6), b.Cmds[2].ElemCount)

	// Indices restart at zero for each command.
	assert.Equal(t, []uint32{4, 5, 6, 4, 6, 7}, b.Indices[6:12])
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, b.Indices[12:18])
}

func TestSpriteBatchClear(t *testing.T) {
	b := newBatch(t)
	require.NoError(t, b.Add(glkit.Sprite2D{Size: glkit.Vec2{X: 1, Y: 1}, Color: glkit.ColorRed}))
	b.Finalize()
	require.Len(t, b.Cmds, 1)
	assert.Equal(t, uint32(0), b.Cmds[0].TextureID)

	b.Clear()
	assert.Zero(t, b.Vertices())
	assert.Empty(t, b.Indices)
	assert.Empty(t, b.Cmds)

	// A zero color packs as transparent black.
	require.NoError(t, b.Add(glkit.Sprite2D{}))
	color, _ := b.Layout().Index(glkit.AttrColor)
	got, err := b.Data().Float32s(0, color)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0}, got)
}

func TestSpriteBatchBytesMatchLayout(t *testing.T) {
	b := newBatch(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Add(glkit.AbsoluteImage{Dst: glkit.Rect{W: 1, H: 1}}))
	}
	assert.Len(t, b.Data().Bytes(), 12*b.Layout().Stride())
}
