// Command gen renders sample sprite scenes offscreen and saves JPEG
// screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit"
	"github.com/go-theft-auto/glkit/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one scene to capture.
type screenshot struct {
	name          string // filename without extension
	width, height int
	draw          func(b *glkit.SpriteBatch) error
}

func run() error {
	cfg := glkit.DefaultConfig()
	cfg.Window.Title = "screenshot-gen"
	cfg.Window.Hidden = true
	cfg.Window.Width, cfg.Window.Height = 64, 64

	win, err := opengl.NewWindow(cfg.Window, cfg.GL)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx := opengl.NewRenderContext()
	programs := opengl.NewProgramRegistry(filepath.Join("example", "shaders"))
	defer programs.Delete()
	prog, err := programs.Load("sprite.vert.tmpl", "sprite.frag.tmpl", map[string]any{"Version": 410})
	if err != nil {
		return err
	}
	layout, err := prog.Layout()
	if err != nil {
		return err
	}
	renderer, err := opengl.NewBatchRenderer(ctx, prog, layout)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	batch := glkit.NewSpriteBatch(layout)
	for _, s := range shots {
		if err := capture(ctx, renderer, batch, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(ctx *opengl.RenderContext, renderer *opengl.BatchRenderer, batch *glkit.SpriteBatch, s screenshot, outDir string) error {
	fb, err := opengl.NewFramebuffer(s.width, s.height)
	if err != nil {
		return err
	}
	defer fb.Delete()

	ctx.BindFramebuffer(fb)
	ctx.Viewport(0, 0, s.width, s.height)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	batch.Clear()
	if err := s.draw(batch); err != nil {
		return err
	}
	if err := renderer.Render(batch, s.width, s.height); err != nil {
		return err
	}

	img, err := fb.ReadPixels(ctx)
	ctx.BindFramebuffer(nil)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns every scene to generate.
func buildScreenshots() []screenshot {
	palette := []uint32{
		glkit.RGBA(230, 80, 70, 255),
		glkit.RGBA(240, 190, 60, 255),
		glkit.RGBA(90, 200, 110, 255),
		glkit.RGBA(70, 140, 230, 255),
	}
	return []screenshot{
		{
			name: "absolute_images", width: 320, height: 200,
			draw: func(b *glkit.SpriteBatch) error {
				for i := 0; i < 12; i++ {
					x, y := float32(i%4), float32(i/4)
					if err := b.Add(glkit.AbsoluteImage{
						Dst:   glkit.Rect{X: 16 + x*76, Y: 16 + y*60, W: 64, H: 48},
						Color: palette[i%len(palette)],
					}); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "transform_hierarchy", width: 320, height: 320,
			draw: func(b *glkit.SpriteBatch) error {
				tree := glkit.NewTransformTree()
				parent := glkit.NodeID{}
				for i := 0; i < 6; i++ {
					n, err := tree.Add(parent)
					if err != nil {
						return err
					}
					tr := glkit.Transform{Rotation: math32.Pi / 7, Scale: glkit.Vec2{X: 0.8, Y: 0.8}}
					tr.Position = glkit.Vec2{X: 70}
					if i == 0 {
						tr = glkit.Transform{Position: glkit.Vec2{X: 160, Y: 160}, Scale: glkit.Vec2{X: 1, Y: 1}}
					}
					if err := tree.SetLocal(n, tr); err != nil {
						return err
					}
					m, err := tree.World(n)
					if err != nil {
						return err
					}
					if err := b.Add(glkit.Sprite2D{
						Size:   glkit.Vec2{X: 48, Y: 48},
						Anchor: glkit.Vec2{X: 0.5, Y: 0.5},
						Color:  palette[i%len(palette)],
						Model:  m,
					}); err != nil {
						return err
					}
					parent = n
				}
				return nil
			},
		},
		{
			name: "clip_rects", width: 320, height: 200,
			draw: func(b *glkit.SpriteBatch) error {
				full := glkit.AbsoluteImage{Dst: glkit.Rect{X: 20, Y: 20, W: 280, H: 160}, Color: palette[3]}
				if err := b.Add(full); err != nil {
					return err
				}
				b.PushClipRect(glkit.Rect{X: 60, Y: 60, W: 200, H: 80})
				full.Color = palette[1]
				if err := b.Add(full); err != nil {
					return err
				}
				b.PopClipRect()
				return nil
			},
		},
	}
}
