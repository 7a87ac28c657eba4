package glkit

// MouseButton represents a mouse button. Values match GLFW's.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount = 8
)

// Key is a keyboard key. Values match GLFW key codes so a backend can pass
// them through unchanged.
type Key int

const (
	KeyUnknown Key = -1
	KeySpace   Key = 32
	Key0       Key = 48
	Key9       Key = 57
	KeyA       Key = 65
	KeyD       Key = 68
	KeyS       Key = 83
	KeyW       Key = 87
	KeyZ       Key = 90

	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyInsert    Key = 260
	KeyDelete    Key = 261
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyPageUp    Key = 266
	KeyPageDown  Key = 267
	KeyHome      Key = 268
	KeyEnd       Key = 269
	KeyF1        Key = 290
	KeyF12       Key = 301

	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyLeftSuper    Key = 343
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
	KeyRightSuper   Key = 347

	KeyLast = 348
)

// Key repeat timing constants
const (
	KeyRepeatDelay    float32 = 0.4  // Initial delay before repeat starts (seconds)
	KeyRepeatInterval float32 = 0.03 // Repeat interval once repeating (seconds)
)

// InputState holds input state for the current frame.
// It is populated by a backend input adapter.
type InputState struct {
	// Mouse position in window pixels
	MouseX, MouseY float32

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released

	// Scroll accumulated this frame
	ScrollX, ScrollY float32

	keyDown    [KeyLast + 1]bool
	keyPressed [KeyLast + 1]bool // True on the frame key was pressed
	keyUp      [KeyLast + 1]bool // True on the frame key was released

	keyHoldTime     [KeyLast + 1]float32
	prevKeyHoldTime [KeyLast + 1]float32

	// Unicode characters typed this frame
	Chars []rune

	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{Chars: make([]rune, 0, 16)}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before polling events.
func (s *InputState) Reset() {
	clear(s.mouseClicked[:])
	clear(s.mouseUp[:])
	clear(s.keyPressed[:])
	clear(s.keyUp[:])
	s.Chars = s.Chars[:0]
	s.ScrollX = 0
	s.ScrollY = 0
}

func validKey(k Key) bool { return k >= 0 && k <= KeyLast }

func validButton(b MouseButton) bool { return b >= 0 && b < MouseButtonCount }

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// MousePos returns the mouse position.
func (s *InputState) MousePos() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}

// SetMouseButton sets mouse button state.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if !validButton(button) {
		return
	}
	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down
	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetKey sets key state. Unknown keys are ignored.
func (s *InputState) SetKey(key Key, down bool) {
	if !validKey(key) {
		return
	}
	wasDown := s.keyDown[key]
	s.keyDown[key] = down
	if down != wasDown {
		s.keyHoldTime[key] = 0
		s.prevKeyHoldTime[key] = 0
	}
	if down && !wasDown {
		s.keyPressed[key] = true
	}
	if !down && wasDown {
		s.keyUp[key] = true
	}
}

// AddScroll accumulates a scroll delta.
func (s *InputState) AddScroll(x, y float32) {
	s.ScrollX += x
	s.ScrollY += y
}

// AddChar adds a typed character.
func (s *InputState) AddChar(ch rune) {
	s.Chars = append(s.Chars, ch)
}

// Advance updates key hold times. Call once per frame with the frame's
// delta time in seconds.
func (s *InputState) Advance(dt float32) {
	for k := range s.keyDown {
		s.prevKeyHoldTime[k] = s.keyHoldTime[k]
		if s.keyDown[k] {
			s.keyHoldTime[k] += dt
		}
	}
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	return validButton(button) && s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	return validButton(button) && s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	return validButton(button) && s.mouseUp[button]
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	return validKey(key) && s.keyDown[key]
}

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	return validKey(key) && s.keyPressed[key]
}

// KeyReleased returns true if a key was released this frame.
func (s *InputState) KeyReleased(key Key) bool {
	return validKey(key) && s.keyUp[key]
}

// KeyRepeated returns true on the initial press, then once KeyRepeatDelay
// has passed, then every KeyRepeatInterval while the key stays down.
func (s *InputState) KeyRepeated(key Key) bool {
	if !validKey(key) {
		return false
	}
	if s.keyPressed[key] {
		return true
	}
	if !s.keyDown[key] {
		return false
	}
	hold := s.keyHoldTime[key]
	if hold < KeyRepeatDelay {
		return false
	}
	prev := s.prevKeyHoldTime[key]
	if prev < KeyRepeatDelay {
		return true
	}
	return int((hold-KeyRepeatDelay)/KeyRepeatInterval) > int((prev-KeyRepeatDelay)/KeyRepeatInterval)
}

// Axis returns -1, 0 or 1 depending on which of neg and pos is held.
func (s *InputState) Axis(neg, pos Key) float32 {
	var v float32
	if s.KeyDown(neg) {
		v--
	}
	if s.KeyDown(pos) {
		v++
	}
	return v
}
