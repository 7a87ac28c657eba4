package vertex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit/vertex"
)

func TestDataFloatRoundTrip(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs(), vertex.WithTypeOverride(2, vertex.Half))
	require.NoError(t, err)
	d, err := vertex.NewData(l, 3)
	require.NoError(t, err)
	assert.Len(t, d.Bytes(), 3*l.Stride())

	require.NoError(t, d.SetFloat32s(1, 0, 1.5, -2))
	require.NoError(t, d.SetFloat32s(2, 1, 0.25, 0.5, 0.75, 1))
	require.NoError(t, d.SetFloat32s(2, 2, 0.5, 1024, -3))

	got, err := d.Float32s(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, -2}, got)

	got, err = d.Float32s(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, 0.75, 1}, got)

	// Half precision represents these exactly.
	got, err = d.Float32s(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 1024, -3}, got)

	// Vertex 0 is untouched.
	got, err = d.Float32s(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0}, got)
}

func TestDataWritesLandAtLayoutOffset(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)
	d, err := vertex.NewData(l, 4)
	require.NoError(t, err)

	require.NoError(t, d.Write(3, 2, []byte{0xde, 0xad, 0xbe, 0xef}))
	off, err := l.Offset(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, d.Bytes()[off:off+4])

	raw, err := d.Read(3, 2)
	require.NoError(t, err)
	assert.Len(t, raw, 12)
}

func TestDataNormalizedIntegers(t *testing.T) {
	l, err := vertex.NewLayout([]vertex.ShaderAttribute{
		{Name: "color", Type: vertex.Vec(vertex.Float, 4)},
		{Name: "normal", Type: vertex.Vec(vertex.Float, 3)},
	},
		vertex.WithTypeOverride(0, vertex.UnsignedByte),
		vertex.WithTypeOverride(1, vertex.Short),
		vertex.WithNormalized(0, 1),
	)
	require.NoError(t, err)
	assert.Equal(t, 4+6, l.Stride())

	d, err := vertex.NewData(l, 1)
	require.NoError(t, err)
	require.NoError(t, d.SetFloat32s(0, 0, 1, 0, 0.5, 2))
	raw, err := d.Read(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 128, 255}, raw)

	require.NoError(t, d.SetFloat32s(0, 1, -1, 0, 1))
	got, err := d.Float32s(0, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-1, 0, 1}, got, 1e-6)
}

func TestDataIntegers(t *testing.T) {
	l, err := vertex.NewLayout([]vertex.ShaderAttribute{
		{Name: "bone", Type: vertex.Vec(vertex.UnsignedShort, 4)},
		{Name: "id", Type: vertex.Scalar(vertex.Int)},
		{Name: "w", Type: vertex.Scalar(vertex.Float)},
	}, vertex.WithPassAsInteger(0, 1))
	require.NoError(t, err)
	d, err := vertex.NewData(l, 2)
	require.NoError(t, err)

	require.NoError(t, d.SetUint32s(1, 0, 1, 2, 3, 65535))
	require.NoError(t, d.SetInt32s(1, 1, -7))
	require.NoError(t, d.SetInt32s(1, 2, 3))

	got, err := d.Float32s(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 65535}, got)
	got, err = d.Float32s(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{-7}, got)
	got, err = d.Float32s(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{3}, got)
}

func TestDataBounds(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)
	d, err := vertex.NewData(l, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetFloat32s(0, 0, 1, 2, 3), vertex.ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.Write(0, 0, make([]byte, 9)), vertex.ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.SetFloat32s(2, 0, 1), vertex.ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.SetFloat32s(0, 5, 1), vertex.ErrIndexOutOfRange)

	require.NoError(t, d.Resize(3))
	assert.Equal(t, 3, d.Len())
	assert.NoError(t, d.SetFloat32s(2, 0, 1))

	require.NoError(t, d.Resize(1))
	assert.Len(t, d.Bytes(), l.Stride())
	assert.ErrorIs(t, d.SetFloat32s(1, 0, 1), vertex.ErrOffsetOutOfRange)
}

func TestCheckWindow(t *testing.T) {
	assert.NoError(t, vertex.CheckWindow(0, 10, 10))
	assert.NoError(t, vertex.CheckWindow(10, 0, 10))
	assert.ErrorIs(t, vertex.CheckWindow(8, 4, 10), vertex.ErrOffsetOutOfRange)
	assert.ErrorIs(t, vertex.CheckWindow(-1, 1, 10), vertex.ErrOffsetOutOfRange)
	assert.ErrorIs(t, vertex.CheckWindow(11, 0, 10), vertex.ErrOffsetOutOfRange)
}

func TestBlockData(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)
	p, err := vertex.NewPartition(l, []int{0, 1}, []int{2, 3, 4})
	require.NoError(t, err)
	bd, err := vertex.NewBlockData(p, 2)
	require.NoError(t, err)

	b0, err := bd.Block(0)
	require.NoError(t, err)
	assert.Len(t, b0, 2*24)
	b1, err := bd.Block(1)
	require.NoError(t, err)
	assert.Len(t, b1, 2*36)

	require.NoError(t, bd.SetFloat32s(1, 1, 3, 7, 8, 9))
	got, err := bd.Float32s(1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 8, 9}, got)

	// Attribute 3 lives in block 1 only.
	assert.ErrorIs(t, bd.SetFloat32s(0, 1, 3, 1), vertex.ErrIndexOutOfRange)
	assert.ErrorIs(t, bd.SetFloat32s(1, 2, 3, 1), vertex.ErrOffsetOutOfRange)
	_, err = bd.Block(2)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)

	require.NoError(t, bd.Resize(3))
	assert.Equal(t, 3, bd.Len())
	require.NoError(t, bd.SetFloat32s(1, 2, 3, 1))
	require.NoError(t, bd.Write(0, 2, 0, make([]byte, 8)))
}

func TestDataRejectsBadCounts(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)

	_, err = vertex.NewData(l, -1)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	_, err = vertex.NewData(l, math.MaxInt/4)
	assert.ErrorIs(t, err, vertex.ErrOffsetOutOfRange)

	d, err := vertex.NewData(l, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Resize(-1), vertex.ErrIndexOutOfRange)
	assert.Equal(t, 1, d.Len())
	assert.Len(t, d.Bytes(), l.Stride())

	_, err = l.Size(-2)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	size, err := l.Size(3)
	require.NoError(t, err)
	assert.Equal(t, 3*l.Stride(), size)

	p, err := vertex.NewPartition(l, []int{0, 1}, []int{2, 3, 4})
	require.NoError(t, err)
	_, err = vertex.NewBlockData(p, -1)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	bd, err := vertex.NewBlockData(p, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, bd.Resize(-5), vertex.ErrIndexOutOfRange)
	assert.Equal(t, 2, bd.Len())
	b1, err := bd.Block(1)
	require.NoError(t, err)
	assert.Len(t, b1, 2*36)
}
