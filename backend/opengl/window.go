// Package opengl is the OpenGL 4.1 and GLFW backend for glkit: windows and
// input, shader programs, vertex buffers fed from vertex layouts, textures,
// framebuffers and a sprite batch renderer.
//
// Every function here must run on the thread that owns the GL context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glkit"
)

// Window is a GLFW window with a current OpenGL core context.
type Window struct {
	win   *glfw.Window
	input *InputAdapter
	last  float64
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// NewWindow initializes GLFW, opens a window and makes its context
// current. Destroy terminates GLFW, so only one window is supported.
func NewWindow(cfg glkit.WindowConfig, glcfg glkit.GLConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, glcfg.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, glcfg.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfwBool(glcfg.Debug))
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.Visible, glfwBool(!cfg.Hidden))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logger().Info("opened window",
		"title", cfg.Title,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	return &Window{win: win, input: NewInputAdapter(win), last: glfw.GetTime()}, nil
}

// Handle returns the underlying GLFW window.
func (w *Window) Handle() *glfw.Window { return w.win }

// Input returns the window's input adapter.
func (w *Window) Input() *InputAdapter { return w.input }

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// PollEvents starts a new input frame and processes pending events. It
// returns the seconds elapsed since the previous call.
func (w *Window) PollEvents() float32 {
	now := glfw.GetTime()
	dt := float32(now - w.last)
	w.last = now
	w.input.BeginFrame(dt)
	glfw.PollEvents()
	return dt
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
		glfw.Terminate()
	}
}
