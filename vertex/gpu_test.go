package vertex_test

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit/vertex"
)

func TestGPUBufferLayout(t *testing.T) {
	l, err := vertex.NewLayout([]vertex.ShaderAttribute{
		{Name: "position", Type: vertex.Vec(vertex.Float, 2)},
		{Name: "uv", Type: vertex.Vec(vertex.Float, 2)},
		{Name: "color", Type: vertex.Vec(vertex.Float, 4)},
	},
		vertex.WithTypeOverride(1, vertex.Half),
		vertex.WithTypeOverride(2, vertex.UnsignedByte),
		vertex.WithNormalized(2),
	)
	require.NoError(t, err)

	bl, err := l.GPUBufferLayout()
	require.NoError(t, err)
	assert.Equal(t, uint64(16), bl.ArrayStride)
	assert.Equal(t, gputypes.VertexStepModeVertex, bl.StepMode)
	assert.Equal(t, []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat16x2, Offset: 8, ShaderLocation: 1},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: 12, ShaderLocation: 2},
	}, bl.Attributes)
}

func TestGPUBufferLayoutsPerBlock(t *testing.T) {
	l, err := vertex.NewLayout([]vertex.ShaderAttribute{
		{Name: "position", Type: vertex.Vec(vertex.Float, 2)},
		{Name: "offset", Type: vertex.Vec(vertex.Float, 2)},
		{Name: "tint", Type: vertex.Vec(vertex.Float, 4)},
	}, vertex.WithInstanceStepRate(1, 1), vertex.WithInstanceStepRate(2, 1))
	require.NoError(t, err)
	p, err := vertex.NewPartition(l, []int{0}, []int{2, 1})
	require.NoError(t, err)

	bls, err := p.GPUBufferLayouts()
	require.NoError(t, err)
	require.Len(t, bls, 2)
	assert.Equal(t, gputypes.VertexStepModeVertex, bls[0].StepMode)
	assert.Equal(t, gputypes.VertexStepModeInstance, bls[1].StepMode)
	assert.Equal(t, uint64(24), bls[1].ArrayStride)
	assert.Equal(t, uint64(0), bls[1].Attributes[0].Offset)
	assert.Equal(t, uint32(2), bls[1].Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(16), bls[1].Attributes[1].Offset)

	// The unified layout mixes step modes in one buffer.
	_, err = l.GPUBufferLayout()
	assert.ErrorIs(t, err, vertex.ErrUnsupportedFormat)
}

func TestGPUFormatUnsupported(t *testing.T) {
	l, err := vertex.NewLayout([]vertex.ShaderAttribute{
		{Name: "precise", Type: vertex.Vec(vertex.Double, 3)},
	})
	require.NoError(t, err)
	_, err = l.GPUBufferLayout()
	assert.ErrorIs(t, err, vertex.ErrUnsupportedFormat)
}
