package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit"
	"github.com/go-theft-auto/glkit/vertex"
)

// Uniforms the batch renderer sets. Programs that lack one simply ignore it.
const (
	UniformProjection = "projection"
	UniformTexture    = "tex"
	UniformUseTexture = "useTexture"
)

// BatchRenderer draws glkit.SpriteBatch contents with one program.
type BatchRenderer struct {
	ctx  *RenderContext
	prog *Program
	vb   *VertexBuffer
	ib   *IndexBuffer
	vao  *VertexArray
}

// NewBatchRenderer creates GL buffers for batches packed with layout.
func NewBatchRenderer(ctx *RenderContext, prog *Program, layout *vertex.Layout) (*BatchRenderer, error) {
	vb, err := NewVertexBuffer(layout, 0, StreamDraw)
	if err != nil {
		return nil, err
	}
	r := &BatchRenderer{
		ctx:  ctx,
		prog: prog,
		vb:   vb,
		ib:   NewIndexBuffer(StreamDraw),
		vao:  NewVertexArray(ctx),
	}
	if err := r.vao.AttachLayout(r.vb); err != nil {
		r.Delete()
		return nil, err
	}
	r.vao.SetIndexBuffer(r.ib)
	ctx.BindVertexArray(nil)
	return r, nil
}

// scissorRect converts a top-left origin clip rectangle to a GL scissor box
// for a framebuffer of the given size. ok is false when nothing is visible.
func scissorRect(clip [4]float32, width, height int) (x, y, w, h int32, ok bool) {
	x0 := max(clip[0], 0)
	y0 := max(clip[1], 0)
	x1 := min(clip[2], float32(width))
	y1 := min(clip[3], float32(height))
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return int32(x0), int32(float32(height) - y1), int32(x1 - x0), int32(y1 - y0), true
}

// glState is the fixed-function state Render changes and restores.
type glState struct {
	blendSrc, blendDst int32
	scissorBox         [4]int32
	blend, depth, cull bool
	scissor            bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissor = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (s glState) restore() {
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	enable(gl.BLEND, s.blend)
	enable(gl.DEPTH_TEST, s.depth)
	enable(gl.CULL_FACE, s.cull)
	enable(gl.SCISSOR_TEST, s.scissor)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

// Render uploads b and draws its commands into a framebuffer of the given
// size with pixel coordinates and a top-left origin. b is finalized first.
func (r *BatchRenderer) Render(b *glkit.SpriteBatch, width, height int) error {
	if b.Vertices() == 0 {
		return nil
	}
	b.Finalize()
	if err := r.vb.Wrap(b.Data()); err != nil {
		return err
	}

	state := saveState()
	defer state.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	r.ctx.Viewport(0, 0, width, height)
	r.ctx.UseProgram(r.prog)
	r.prog.SetMat3(UniformProjection, glkit.Ortho3(float32(width), float32(height)))
	r.prog.SetInt(UniformTexture, 0)

	if err := r.vb.Upload(); err != nil {
		return err
	}
	r.ctx.BindVertexArray(r.vao)
	if err := r.ib.Set(b.Indices); err != nil {
		return err
	}

	drawn := 0
	for _, cmd := range b.Cmds {
		x, y, w, h, ok := scissorRect(cmd.ClipRect, width, height)
		if !ok {
			continue
		}
		gl.Scissor(x, y, w, h)

		if cmd.TextureID != 0 {
			r.ctx.bindTextureID(0, cmd.TextureID)
			r.prog.SetInt(UniformUseTexture, 1)
		} else {
			r.prog.SetInt(UniformUseTexture, 0)
		}

		if err := r.ctx.DrawElementsBaseVertex(Triangles, int(cmd.ElemCount), int(cmd.IndexOffset), int(cmd.VertexOffset)); err != nil {
			return err
		}
		drawn++
	}
	r.ctx.BindVertexArray(nil)
	logger().Debug("rendered batch", "commands", drawn, "vertices", b.Vertices())
	return CheckError("render batch")
}

// Delete releases the renderer's buffers and vertex array. The program is
// not deleted.
func (r *BatchRenderer) Delete() {
	r.vao.Delete()
	r.ib.Delete()
	r.vb.Delete()
}
