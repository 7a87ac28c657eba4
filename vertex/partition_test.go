package vertex_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit/vertex"
)

func TestPartitionStridesAndOffsets(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)

	// positions alone, then the model matrix columns in reverse, color unassigned.
	p, err := vertex.NewPartition(l, []int{0}, []int{4, 3, 2})
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())

	s0, err := p.BlockStride(0)
	require.NoError(t, err)
	assert.Equal(t, 8, s0)
	s1, err := p.BlockStride(1)
	require.NoError(t, err)
	assert.Equal(t, 36, s1)

	off, err := p.AttributeOffset(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	off, err = p.AttributeOffset(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 24, off)

	got, err := p.Offset(1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 10*36+12, got)

	b, ok := p.BlockOf(2)
	assert.True(t, ok)
	assert.Equal(t, 1, b)

	attrs, err := p.Block(1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, attrs)
}

func TestPartitionUnassignedAttribute(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)
	p, err := vertex.NewPartition(l, []int{0}, []int{2, 3, 4})
	require.NoError(t, err)

	_, ok := p.BlockOf(1)
	assert.False(t, ok)
	for b := 0; b < p.Len(); b++ {
		_, err := p.Offset(b, 0, 1)
		assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	}
}

func TestPartitionErrors(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)

	_, err = vertex.NewPartition(l, []int{0, 1}, []int{1})
	assert.ErrorIs(t, err, vertex.ErrAttributeReassigned)

	_, err = vertex.NewPartition(l, []int{0, 0})
	assert.ErrorIs(t, err, vertex.ErrAttributeReassigned)

	_, err = vertex.NewPartition(l, []int{5})
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)

	p, err := vertex.NewPartition(l, []int{0})
	require.NoError(t, err)
	_, err = p.BlockStride(1)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	_, err = p.Offset(-1, 0, 0)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	_, err = p.Offset(0, -3, 0)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
	_, err = p.Block(2)
	assert.ErrorIs(t, err, vertex.ErrIndexOutOfRange)
}

func TestPartitionOffsetOverflow(t *testing.T) {
	l, err := vertex.NewLayout(spriteInputs())
	require.NoError(t, err)
	p, err := vertex.NewPartition(l, []int{0}, []int{2, 3, 4})
	require.NoError(t, err)

	_, err = p.Offset(1, math.MaxInt/36+1, 2)
	assert.ErrorIs(t, err, vertex.ErrOffsetOutOfRange)
	_, err = p.Offset(0, math.MaxInt/4, 0)
	assert.ErrorIs(t, err, vertex.ErrOffsetOutOfRange)
}

func TestPartitionInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for iter := 0; iter < 300; iter++ {
		l, err := vertex.NewLayout(randomInputs(r))
		require.NoError(t, err)

		// Deal a random permutation of the attributes into random blocks,
		// leaving some unassigned.
		nblocks := 1 + r.IntN(3)
		blocks := make([][]int, nblocks)
		for _, a := range r.Perm(l.Len()) {
			if k := r.IntN(nblocks + 1); k < nblocks {
				blocks[k] = append(blocks[k], a)
			}
		}
		p, err := vertex.NewPartition(l, blocks...)
		require.NoError(t, err)

		seen := map[int]int{}
		for b := range blocks {
			stride, err := p.BlockStride(b)
			require.NoError(t, err)
			sum := 0
			for _, a := range blocks[b] {
				prev, dup := seen[a]
				require.False(t, dup, "attribute %d in blocks %d and %d", a, prev, b)
				seen[a] = b

				off, err := p.AttributeOffset(b, a)
				require.NoError(t, err)
				require.Equal(t, sum, off)

				attr, _ := l.Attribute(a)
				sum += attr.Size()

				v := r.IntN(100)
				got, err := p.Offset(b, v, a)
				require.NoError(t, err)
				require.Equal(t, v*stride+off, got)
			}
			require.Equal(t, sum, stride)
		}
	}
}
