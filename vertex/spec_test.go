package vertex_test

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit/vertex"
)

const spriteSpec = `
[[override]]
index = 1
type = "ubyte"
normalized = true

[[override]]
index = 2
type = "half"
step_rate = 1

[[block]]
attributes = [0, 1]

[[block]]
attributes = [2, 3, 4]
`

func TestLayoutSpecFromTOML(t *testing.T) {
	var spec vertex.LayoutSpec
	require.NoError(t, toml.Unmarshal([]byte(spriteSpec), &spec))
	require.Len(t, spec.Overrides, 2)
	require.NotNil(t, spec.Overrides[1].Type)
	assert.Equal(t, vertex.Half, *spec.Overrides[1].Type)

	l, err := vertex.NewLayout(spriteInputs(), vertex.WithSpec(spec))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8, 12, 18, 30}, offsets(l))
	assert.Equal(t, 42, l.Stride())

	color, _ := l.Attribute(1)
	assert.True(t, color.Normalized)
	assert.Equal(t, vertex.UnsignedByte, color.Base)
	col, _ := l.Attribute(2)
	assert.Equal(t, uint32(1), col.InstanceStepRate)

	require.True(t, spec.Partitioned())
	p, err := spec.Partition(l)
	require.NoError(t, err)
	s, _ := p.BlockStride(0)
	assert.Equal(t, 12, s)
	s, _ = p.BlockStride(1)
	assert.Equal(t, 30, s)
}
