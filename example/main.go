// Example draws a small solar system of sprites: a transform hierarchy
// spun by an entity/component loop, batched into one sprite batch and drawn
// over a gradient background compiled from WGSL.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                                # Go + OpenGL/X11 headers
//	go run ./example/ [example/glkit.toml]
//
// A and D move the system, space pauses it and Escape quits.
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit"
	"github.com/go-theft-auto/glkit/backend/opengl"
	"github.com/go-theft-auto/glkit/vertex"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	path := "example/glkit.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := run(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// spin rotates a transform node at Rate radians per second.
type spin struct {
	Node glkit.NodeID
	Rate float32
}

// body is a drawable sprite attached to a transform node.
type body struct {
	Node  glkit.NodeID
	Size  float32
	Color uint32
}

func run(path string) error {
	cfg, err := glkit.LoadConfig(path)
	if err != nil {
		return err
	}
	glkit.SetVerbose(cfg.Verbose)
	log := glkit.Logger()

	win, err := opengl.NewWindow(cfg.Window, cfg.GL)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx := opengl.NewRenderContext()
	programs := opengl.NewProgramRegistry(cfg.Shaders.Dir)
	defer programs.Delete()

	bg, err := newBackground(ctx, programs)
	if err != nil {
		return err
	}
	defer bg.Delete()

	prog, err := programs.Load("sprite.vert.tmpl", "sprite.frag.tmpl", map[string]any{"Version": 410})
	if err != nil {
		return err
	}
	spec, _ := cfg.Layout("sprite")
	layout, err := prog.Layout(vertex.WithSpec(spec))
	if err != nil {
		return fmt.Errorf("sprite layout: %w", err)
	}
	log.Info("sprite layout", "attributes", layout.Len(), "stride", layout.Stride())

	renderer, err := opengl.NewBatchRenderer(ctx, prog, layout)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	tex, err := opengl.NewTexture(checker(64, 8), opengl.TextureOptions{Filter: opengl.Nearest, Mipmaps: true})
	if err != nil {
		return err
	}
	defer tex.Delete()

	tree := glkit.NewTransformTree()
	world := glkit.NewWorld()
	sun, err := buildSystem(tree, world)
	if err != nil {
		return err
	}

	paused := false
	input := win.Input()
	if _, err := input.Events().Add(glkit.HandlerID{}, func(e glkit.Event) bool {
		if e.Kind != glkit.EventKey || e.Action != glkit.Press {
			return false
		}
		switch e.Key {
		case glkit.KeyEscape:
			win.SetShouldClose(true)
		case glkit.KeySpace:
			paused = !paused
			log.Info("toggled pause", "paused", paused)
		default:
			return false
		}
		return true
	}); err != nil {
		return err
	}

	batch := glkit.NewSpriteBatch(layout)
	var sunPos glkit.Vec2
	for !win.ShouldClose() {
		dt := win.PollEvents()
		w, h := win.FramebufferSize()
		state := input.State()

		sunPos.X += state.Axis(glkit.KeyA, glkit.KeyD) * 200 * dt
		if err := tree.SetPosition(sun, glkit.Vec2{X: float32(w)/2 + sunPos.X, Y: float32(h) / 2}); err != nil {
			return err
		}
		if !paused {
			glkit.Each(world, func(_ glkit.Entity, s *spin) {
				if l, err := tree.Local(s.Node); err == nil {
					_ = tree.SetRotation(s.Node, math32.Mod(l.Rotation+s.Rate*dt, 2*math32.Pi))
				}
			})
		}

		batch.Clear()
		batch.SetTexture(tex.ID())
		var drawErr error
		glkit.Each(world, func(e glkit.Entity, b *body) {
			m, err := tree.World(b.Node)
			if err != nil {
				drawErr = fmt.Errorf("entity %v: %w", e, err)
				return
			}
			if err := batch.Add(glkit.Sprite2D{
				Size:   glkit.Vec2{X: b.Size, Y: b.Size},
				Anchor: glkit.Vec2{X: 0.5, Y: 0.5},
				Color:  b.Color,
				Model:  m,
			}); err != nil {
				drawErr = err
			}
		})
		if drawErr != nil {
			return drawErr
		}

		ctx.BindFramebuffer(nil)
		ctx.Viewport(0, 0, w, h)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := bg.Draw(); err != nil {
			return err
		}
		if err := renderer.Render(batch, w, h); err != nil {
			return err
		}
		win.SwapBuffers()
	}
	return nil
}

// buildSystem creates a sun with two planets, one of them with a moon.
// Every node spins; bodies are attached to the nodes they draw.
func buildSystem(tree *glkit.TransformTree, world *glkit.World) (glkit.NodeID, error) {
	type planet struct {
		orbit, size, rate float32
		color             uint32
		moon              bool
	}
	sun, err := tree.Add(glkit.NodeID{})
	if err != nil {
		return sun, err
	}
	if err := attach(world, sun, 0.2, 96, glkit.RGBA(255, 200, 64, 255)); err != nil {
		return sun, err
	}
	for _, p := range []planet{
		{orbit: 180, size: 40, rate: 0.8, color: glkit.RGBA(80, 160, 255, 255), moon: true},
		{orbit: 300, size: 56, rate: -0.4, color: glkit.RGBA(220, 90, 70, 255)},
	} {
		// The pivot spins around the sun; the planet sits at the orbit radius.
		pivot, err := tree.Add(sun)
		if err != nil {
			return sun, err
		}
		if err := glkit.AddComponent(world, world.Spawn(), spin{Node: pivot, Rate: p.rate}); err != nil {
			return sun, err
		}
		node, err := tree.Add(pivot)
		if err != nil {
			return sun, err
		}
		if err := tree.SetPosition(node, glkit.Vec2{X: p.orbit}); err != nil {
			return sun, err
		}
		if err := attach(world, node, 1.5, p.size, p.color); err != nil {
			return sun, err
		}
		if !p.moon {
			continue
		}
		moon, err := tree.Add(node)
		if err != nil {
			return sun, err
		}
		if err := tree.SetPosition(moon, glkit.Vec2{X: 48}); err != nil {
			return sun, err
		}
		if err := attach(world, moon, 3, 14, glkit.ColorWhite); err != nil {
			return sun, err
		}
	}
	return sun, nil
}

func attach(world *glkit.World, node glkit.NodeID, rate, size float32, c uint32) error {
	e := world.Spawn()
	if err := glkit.AddComponent(world, e, spin{Node: node, Rate: rate}); err != nil {
		return err
	}
	return glkit.AddComponent(world, e, body{Node: node, Size: size, Color: c})
}

func checker(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(255)
			if (x/cell+y/cell)%2 == 1 {
				v = 190
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// background is a full-screen gradient drawn with a WGSL program.
type background struct {
	ctx  *opengl.RenderContext
	prog *opengl.Program
	vb   *opengl.VertexBuffer
	vao  *opengl.VertexArray
}

func newBackground(ctx *opengl.RenderContext, programs *opengl.ProgramRegistry) (*background, error) {
	prog, err := programs.Load("background.wgsl", "", map[string]any{
		"vertex_entry":   "vs_main",
		"fragment_entry": "fs_main",
	})
	if err != nil {
		return nil, err
	}
	layout, err := prog.Layout()
	if err != nil {
		return nil, err
	}
	pos, ok1 := layout.Index("position")
	col, ok2 := layout.Index("color")
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("background: program inputs %v lack position and color", prog.Attributes())
	}

	vb, err := opengl.NewVertexBuffer(layout, 4, opengl.StaticDraw)
	if err != nil {
		return nil, err
	}
	d := vb.Data()
	top := glkit.UnpackRGBAf(glkit.RGBA(18, 22, 40, 255))
	bottom := glkit.UnpackRGBAf(glkit.RGBA(4, 4, 10, 255))
	corners := [4][2]float32{{-1, 1}, {1, 1}, {-1, -1}, {1, -1}}
	for v, c := range corners {
		shade := bottom
		if c[1] > 0 {
			shade = top
		}
		if err := d.SetFloat32s(v, pos, c[0], c[1]); err != nil {
			return nil, err
		}
		if err := d.SetFloat32s(v, col, shade[:]...); err != nil {
			return nil, err
		}
	}
	if err := vb.Upload(); err != nil {
		return nil, err
	}

	vao := opengl.NewVertexArray(ctx)
	if err := vao.AttachLayout(vb); err != nil {
		return nil, err
	}
	return &background{ctx: ctx, prog: prog, vb: vb, vao: vao}, nil
}

func (b *background) Draw() error {
	b.ctx.UseProgram(b.prog)
	b.ctx.BindVertexArray(b.vao)
	return b.ctx.DrawArrays(opengl.TriangleStrip, 0, 4)
}

func (b *background) Delete() {
	b.vao.Delete()
	b.vb.Delete()
}
