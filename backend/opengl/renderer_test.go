package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScissorRect(t *testing.T) {
	x, y, w, h, ok := scissorRect([4]float32{10, 20, 110, 70}, 800, 600)
	assert.True(t, ok)
	assert.Equal(t, [4]int32{10, 530, 100, 50}, [4]int32{x, y, w, h})

	// Unbounded clips cover the framebuffer.
	x, y, w, h, ok = scissorRect([4]float32{-1e9, -1e9, 1e9, 1e9}, 800, 600)
	assert.True(t, ok)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, [4]int32{x, y, w, h})

	// Partially offscreen clips are trimmed.
	x, y, w, h, ok = scissorRect([4]float32{-50, 550, 100, 700}, 800, 600)
	assert.True(t, ok)
	assert.Equal(t, [4]int32{0, 0, 100, 50}, [4]int32{x, y, w, h})

	_, _, _, _, ok = scissorRect([4]float32{900, 0, 1000, 10}, 800, 600)
	assert.False(t, ok)
	_, _, _, _, ok = scissorRect([4]float32{10, 10, 10, 50}, 800, 600)
	assert.False(t, ok)
}
