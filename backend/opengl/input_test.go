package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit"
)

func TestKeyFromGLFW(t *testing.T) {
	assert.Equal(t, glkit.KeyA, keyFromGLFW(glfw.KeyA))
	assert.Equal(t, glkit.KeyEscape, keyFromGLFW(glfw.KeyEscape))
	assert.Equal(t, glkit.KeyF12, keyFromGLFW(glfw.KeyF12))
	assert.Equal(t, glkit.KeyRightSuper, keyFromGLFW(glfw.KeyRightSuper))
	assert.Equal(t, glkit.KeyLeftShift, keyFromGLFW(glfw.KeyLeftShift))
	assert.Equal(t, glkit.KeyUnknown, keyFromGLFW(glfw.KeyUnknown))
}

func TestActionAndModsFromGLFW(t *testing.T) {
	assert.Equal(t, glkit.Press, actionFromGLFW(glfw.Press))
	assert.Equal(t, glkit.Repeat, actionFromGLFW(glfw.Repeat))
	assert.Equal(t, glkit.Release, actionFromGLFW(glfw.Release))

	ctrl, shift, alt, super := modsFromGLFW(glfw.ModControl | glfw.ModAlt)
	assert.True(t, ctrl)
	assert.False(t, shift)
	assert.True(t, alt)
	assert.False(t, super)
}

func TestButtonFromGLFW(t *testing.T) {
	b, ok := buttonFromGLFW(glfw.MouseButtonRight)
	assert.True(t, ok)
	assert.Equal(t, glkit.MouseButtonRight, b)

	b, ok = buttonFromGLFW(glfw.MouseButtonMiddle)
	assert.True(t, ok)
	assert.Equal(t, glkit.MouseButtonMiddle, b)

	_, ok = buttonFromGLFW(glfw.MouseButton(12))
	assert.False(t, ok)
}

func TestInputAdapterUpdatesStateAndDispatches(t *testing.T) {
	a := newInputAdapter()
	var got []glkit.Event
	_, err := a.Events().Add(glkit.HandlerID{}, func(e glkit.Event) bool {
		got = append(got, e)
		return false
	})
	require.NoError(t, err)

	a.BeginFrame(0.016)
	a.keyCallback(nil, glfw.KeyW, 0, glfw.Press, glfw.ModShift)
	a.cursorPosCallback(nil, 10, 20)
	a.mouseButtonCallback(nil, glfw.MouseButtonLeft, glfw.Press, 0)
	a.scrollCallback(nil, 0, -1)
	a.charCallback(nil, 'w')
	a.framebufferSizeCallback(nil, 800, 600)

	s := a.State()
	assert.True(t, s.KeyPressed(glkit.KeyW))
	assert.False(t, s.ModShift, "modifiers follow the latest event")
	assert.True(t, s.MouseClicked(glkit.MouseButtonLeft))
	assert.Equal(t, glkit.Vec2{X: 10, Y: 20}, s.MousePos())
	assert.Equal(t, float32(-1), s.ScrollY)
	assert.Equal(t, []rune{'w'}, s.Chars)

	kinds := make([]glkit.EventKind, len(got))
	for i, e := range got {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []glkit.EventKind{
		glkit.EventKey, glkit.EventMouseMove, glkit.EventMouseButton,
		glkit.EventScroll, glkit.EventChar, glkit.EventResize,
	}, kinds)
	assert.True(t, got[0].Shift)
	assert.Equal(t, glkit.Vec2{X: 10, Y: 20}, got[2].Pos)
	assert.Equal(t, 800, got[5].Width)

	// The next frame clears edges but keeps held state.
	a.BeginFrame(0.016)
	assert.False(t, s.KeyPressed(glkit.KeyW))
	assert.True(t, s.KeyDown(glkit.KeyW))
	assert.Empty(t, s.Chars)

	a.keyCallback(nil, glfw.KeyW, 0, glfw.Release, 0)
	assert.True(t, s.KeyReleased(glkit.KeyW))
}

func TestInputAdapterIgnoresUnknownKeys(t *testing.T) {
	a := newInputAdapter()
	calls := 0
	_, err := a.Events().Add(glkit.HandlerID{}, func(glkit.Event) bool {
		calls++
		return false
	})
	require.NoError(t, err)
	a.keyCallback(nil, glfw.KeyUnknown, 0, glfw.Press, 0)
	a.mouseButtonCallback(nil, glfw.MouseButton(9), glfw.Press, 0)
	assert.Zero(t, calls)
}
