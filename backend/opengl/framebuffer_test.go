package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	pix := []byte{
		1, 1,
		2, 2,
		3, 3,
	}
	flipRows(pix, 2, 3)
	assert.Equal(t, []byte{3, 3, 2, 2, 1, 1}, pix)

	even := []byte{1, 2, 3, 4}
	flipRows(even, 1, 4)
	assert.Equal(t, []byte{4, 3, 2, 1}, even)

	single := []byte{9, 9}
	flipRows(single, 2, 1)
	assert.Equal(t, []byte{9, 9}, single)
}

func TestFramebufferStatusString(t *testing.T) {
	assert.Equal(t, "missing attachment", framebufferStatusString(0x8CD7))
	assert.Equal(t, "status 0x1234", framebufferStatusString(0x1234))
	assert.Equal(t, "INVALID_VALUE", glErrorString(0x0501))
}
