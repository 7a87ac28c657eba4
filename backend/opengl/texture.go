package opengl

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Filter is a texture sampling filter.
type Filter int32

const (
	Linear  Filter = gl.LINEAR
	Nearest Filter = gl.NEAREST
)

// Wrap is a texture coordinate wrap mode.
type Wrap int32

const (
	ClampToEdge Wrap = gl.CLAMP_TO_EDGE
	Repeat      Wrap = gl.REPEAT
	MirrorWrap  Wrap = gl.MIRRORED_REPEAT
)

// TextureOptions controls sampling and upload of a texture. The zero value
// samples linearly, clamps to edge and uploads at full size.
type TextureOptions struct {
	Filter  Filter
	Wrap    Wrap
	Mipmaps bool
	// MaxSize downscales images whose larger side exceeds it. Zero keeps
	// the source size.
	MaxSize int
}

func (o TextureOptions) withDefaults() TextureOptions {
	if o.Filter == 0 {
		o.Filter = Linear
	}
	if o.Wrap == 0 {
		o.Wrap = ClampToEdge
	}
	return o
}

// Texture is a 2D RGBA8 texture.
type Texture struct {
	id            uint32
	width, height int
}

// LoadTexture decodes an image file (PNG, JPEG, BMP, TIFF or WebP) and
// uploads it.
func LoadTexture(path string, opts TextureOptions) (*Texture, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(img, opts)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("opengl: decode %s: %w", path, err)
	}
	logger().Debug("decoded image", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// NewTexture uploads img.
func NewTexture(img image.Image, opts TextureOptions) (*Texture, error) {
	rgba := toRGBA(img, opts.MaxSize)
	b := rgba.Bounds()
	return newTexture(b.Dx(), b.Dy(), opts, rgba.Pix)
}

// NewEmptyTexture allocates an uninitialized width x height texture, for
// use as a render target.
func NewEmptyTexture(width, height int, opts TextureOptions) (*Texture, error) {
	return newTexture(width, height, opts, nil)
}

func newTexture(width, height int, opts TextureOptions, pix []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("opengl: texture size %dx%d must be positive", width, height)
	}
	opts = opts.withDefaults()

	t := &Texture{width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	minFilter := int32(opts.Filter)
	if opts.Mipmaps {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
		if opts.Filter == Nearest {
			minFilter = gl.NEAREST_MIPMAP_NEAREST
		}
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(opts.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(opts.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(opts.Wrap))

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, dataPtr(pix))
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := CheckError("create texture"); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// toRGBA converts img to tightly packed, origin-based RGBA, downscaling
// so neither side exceeds maxSize when maxSize is positive.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && src.Min == (image.Point{}) && rgba.Stride == 4*w {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
