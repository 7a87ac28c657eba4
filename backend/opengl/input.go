package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glkit"
)

// InputAdapter turns GLFW callbacks into glkit.InputState updates and
// glkit.Event dispatches.
type InputAdapter struct {
	state  *glkit.InputState
	events *glkit.EventTree[glkit.Event]
}

// NewInputAdapter installs input callbacks on w.
func NewInputAdapter(w *glfw.Window) *InputAdapter {
	a := newInputAdapter()
	w.SetKeyCallback(a.keyCallback)
	w.SetCharCallback(a.charCallback)
	w.SetMouseButtonCallback(a.mouseButtonCallback)
	w.SetScrollCallback(a.scrollCallback)
	w.SetCursorPosCallback(a.cursorPosCallback)
	w.SetFramebufferSizeCallback(a.framebufferSizeCallback)
	return a
}

func newInputAdapter() *InputAdapter {
	return &InputAdapter{
		state:  glkit.NewInputState(),
		events: glkit.NewEventTree[glkit.Event](),
	}
}

// State returns the polled input state.
func (a *InputAdapter) State() *glkit.InputState { return a.state }

// Events returns the tree input events are dispatched through.
func (a *InputAdapter) Events() *glkit.EventTree[glkit.Event] { return a.events }

// BeginFrame clears per-frame input and advances key hold times by dt
// seconds. Call it before polling events.
func (a *InputAdapter) BeginFrame(dt float32) {
	a.state.Reset()
	a.state.Advance(dt)
}

func (a *InputAdapter) withMods(e glkit.Event, mods glfw.ModifierKey) glkit.Event {
	e.Ctrl, e.Shift, e.Alt, e.Super = modsFromGLFW(mods)
	a.state.ModCtrl, a.state.ModShift, a.state.ModAlt, a.state.ModSuper = e.Ctrl, e.Shift, e.Alt, e.Super
	return e
}

func (a *InputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	a.onKey(keyFromGLFW(key), actionFromGLFW(action), mods)
}

func (a *InputAdapter) onKey(key glkit.Key, action glkit.Action, mods glfw.ModifierKey) {
	if key == glkit.KeyUnknown {
		return
	}
	a.state.SetKey(key, action != glkit.Release)
	a.events.Dispatch(a.withMods(glkit.Event{Kind: glkit.EventKey, Key: key, Action: action}, mods))
}

func (a *InputAdapter) charCallback(_ *glfw.Window, char rune) {
	a.state.AddChar(char)
	a.events.Dispatch(glkit.Event{Kind: glkit.EventChar, Char: char})
}

func (a *InputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := buttonFromGLFW(button)
	if !ok {
		return
	}
	act := actionFromGLFW(action)
	a.state.SetMouseButton(b, act != glkit.Release)
	a.events.Dispatch(a.withMods(glkit.Event{
		Kind:   glkit.EventMouseButton,
		Button: b,
		Action: act,
		Pos:    a.state.MousePos(),
	}, mods))
}

func (a *InputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.state.AddScroll(float32(xoff), float32(yoff))
	a.events.Dispatch(glkit.Event{Kind: glkit.EventScroll, Pos: glkit.Vec2{X: float32(xoff), Y: float32(yoff)}})
}

func (a *InputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.state.SetMousePos(float32(xpos), float32(ypos))
	a.events.Dispatch(glkit.Event{Kind: glkit.EventMouseMove, Pos: a.state.MousePos()})
}

func (a *InputAdapter) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	a.events.Dispatch(glkit.Event{Kind: glkit.EventResize, Width: width, Height: height})
}

// keyFromGLFW maps a GLFW key. glkit keys share GLFW's codes.
func keyFromGLFW(k glfw.Key) glkit.Key {
	if k < 0 || int(k) > glkit.KeyLast {
		return glkit.KeyUnknown
	}
	return glkit.Key(k)
}

func actionFromGLFW(a glfw.Action) glkit.Action {
	switch a {
	case glfw.Press:
		return glkit.Press
	case glfw.Repeat:
		return glkit.Repeat
	default:
		return glkit.Release
	}
}

func modsFromGLFW(m glfw.ModifierKey) (ctrl, shift, alt, super bool) {
	return m&glfw.ModControl != 0, m&glfw.ModShift != 0, m&glfw.ModAlt != 0, m&glfw.ModSuper != 0
}

func buttonFromGLFW(b glfw.MouseButton) (glkit.MouseButton, bool) {
	if b < 0 || int(b) >= glkit.MouseButtonCount {
		return 0, false
	}
	return glkit.MouseButton(b), true
}
