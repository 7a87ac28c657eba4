package opengl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit"
)

var (
	// ErrShaderCompile is returned when a shader stage fails to compile.
	ErrShaderCompile = errors.New("opengl: shader compilation failed")
	// ErrProgramLink is returned when a program fails to link.
	ErrProgramLink = errors.New("opengl: program link failed")
	// ErrFramebufferIncomplete is returned when a framebuffer is not
	// complete after its attachments are set.
	ErrFramebufferIncomplete = errors.New("opengl: framebuffer incomplete")
	// ErrLayoutMismatch is returned when vertex data packed with one layout
	// is handed to a buffer or renderer built for another.
	ErrLayoutMismatch = errors.New("opengl: vertex layout mismatch")
	// ErrGL wraps codes reported by glGetError.
	ErrGL = errors.New("opengl: GL error")
)

// logger returns the module logger tagged with this backend.
func logger() *slog.Logger {
	return glkit.Logger().With("backend", "opengl")
}

// CheckError drains the GL error queue and reports the first error, if any,
// tagged with op.
func CheckError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		} else {
			logger().Debug("additional GL error", "op", op, "code", glErrorString(code))
		}
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w %s", op, ErrGL, glErrorString(first))
}

func glErrorString(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

func framebufferStatusString(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return "complete"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	default:
		return fmt.Sprintf("status 0x%04X", status)
	}
}
