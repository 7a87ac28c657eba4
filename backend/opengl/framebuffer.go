package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an offscreen render target with an RGBA colour texture
// and a combined depth/stencil renderbuffer.
type Framebuffer struct {
	id            uint32
	depthStencil  uint32
	color         *Texture
	width, height int
}

// NewFramebuffer creates a complete width x height framebuffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	color, err := NewEmptyTexture(width, height, TextureOptions{})
	if err != nil {
		return nil, fmt.Errorf("framebuffer colour: %w", err)
	}

	f := &Framebuffer{color: color, width: width, height: height}
	gl.GenFramebuffers(1, &f.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color.ID(), 0)

	gl.GenRenderbuffers(1, &f.depthStencil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depthStencil)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depthStencil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, fmt.Errorf("%w: %s", ErrFramebufferIncomplete, framebufferStatusString(status))
	}
	return f, nil
}

// ID returns the GL framebuffer name.
func (f *Framebuffer) ID() uint32 { return f.id }

// Color returns the colour attachment.
func (f *Framebuffer) Color() *Texture { return f.color }

// Size returns the framebuffer dimensions in pixels.
func (f *Framebuffer) Size() (width, height int) { return f.width, f.height }

// ReadPixels binds f through ctx and copies its colour attachment into an
// image with a top-left origin.
func (f *Framebuffer) ReadPixels(ctx *RenderContext) (*image.RGBA, error) {
	ctx.BindFramebuffer(f)
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(f.width), int32(f.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if err := CheckError("read pixels"); err != nil {
		return nil, err
	}
	flipRows(img.Pix, img.Stride, f.height)
	return img, nil
}

// flipRows reverses the row order of a pixel buffer in place. GL rows run
// bottom to top.
func flipRows(pix []byte, stride, height int) {
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bot := pix[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// Delete releases the framebuffer and its attachments.
func (f *Framebuffer) Delete() {
	if f.id != 0 {
		gl.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
	if f.depthStencil != 0 {
		gl.DeleteRenderbuffers(1, &f.depthStencil)
		f.depthStencil = 0
	}
	if f.color != nil {
		f.color.Delete()
	}
}
