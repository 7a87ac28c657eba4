package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// MaxTextureUnits is the number of texture units RenderContext tracks.
// GL 4.1 guarantees at least this many for fragment shaders.
const MaxTextureUnits = 16

var (
	// ErrNoProgram is returned by draw calls made with no program in use.
	ErrNoProgram = errors.New("opengl: no program in use")
	// ErrNoVertexArray is returned by draw calls made with no vertex array bound.
	ErrNoVertexArray = errors.New("opengl: no vertex array bound")
)

// binding is one cached GL binding. An unknown binding always reaches GL.
type binding struct {
	id    uint32
	known bool
}

// bindCache mirrors the GL bindings RenderContext changes. Each set method
// records the new value and reports whether the GL call is needed.
type bindCache struct {
	program     binding
	vertexArray binding
	framebuffer binding
	activeUnit  int
	unitKnown   bool
	textures    [MaxTextureUnits]binding
	viewport    [4]int32
	viewKnown   bool
	skipped     int
}

func (c *bindCache) invalidate() {
	*c = bindCache{skipped: c.skipped}
}

func (c *bindCache) set(b *binding, id uint32) bool {
	if b.known && b.id == id {
		c.skipped++
		return false
	}
	*b = binding{id: id, known: true}
	return true
}

func (c *bindCache) setProgram(id uint32) bool     { return c.set(&c.program, id) }
func (c *bindCache) setVertexArray(id uint32) bool { return c.set(&c.vertexArray, id) }
func (c *bindCache) setFramebuffer(id uint32) bool { return c.set(&c.framebuffer, id) }

// setTexture reports whether the active unit must change and whether the
// texture must be bound. A skipped bind never switches units.
func (c *bindCache) setTexture(unit int, id uint32) (activate, bind bool) {
	if !c.set(&c.textures[unit], id) {
		return false, false
	}
	activate = !c.unitKnown || c.activeUnit != unit
	c.activeUnit, c.unitKnown = unit, true
	return activate, true
}

func (c *bindCache) setViewport(v [4]int32) bool {
	if c.viewKnown && c.viewport == v {
		c.skipped++
		return false
	}
	c.viewport, c.viewKnown = v, true
	return true
}

func (c *bindCache) drawable() error {
	if c.program.id == 0 {
		return ErrNoProgram
	}
	if c.vertexArray.id == 0 {
		return ErrNoVertexArray
	}
	return nil
}

// RenderContext owns the GL binding state for one GL context. Binding
// through it skips calls that would not change anything. Code that binds
// behind its back must call Invalidate.
type RenderContext struct {
	cache bindCache
}

// NewRenderContext returns a context that assumes nothing about current GL
// state; the first bind of each kind always reaches GL.
func NewRenderContext() *RenderContext {
	return &RenderContext{}
}

// Invalidate forgets the cached bindings.
func (c *RenderContext) Invalidate() { c.cache.invalidate() }

// Skipped returns how many redundant binds were elided.
func (c *RenderContext) Skipped() int { return c.cache.skipped }

// UseProgram makes p current. A nil program unbinds.
func (c *RenderContext) UseProgram(p *Program) {
	var id uint32
	if p != nil {
		id = p.id
	}
	if c.cache.setProgram(id) {
		gl.UseProgram(id)
	}
}

// BindVertexArray binds va. A nil vertex array unbinds.
func (c *RenderContext) BindVertexArray(va *VertexArray) {
	var id uint32
	if va != nil {
		id = va.id
	}
	if c.cache.setVertexArray(id) {
		gl.BindVertexArray(id)
	}
}

// BindFramebuffer renders into f, or into the default framebuffer when f
// is nil.
func (c *RenderContext) BindFramebuffer(f *Framebuffer) {
	var id uint32
	if f != nil {
		id = f.id
	}
	if c.cache.setFramebuffer(id) {
		gl.BindFramebuffer(gl.FRAMEBUFFER, id)
	}
}

// BindTexture binds t to texture unit unit. A nil texture unbinds.
func (c *RenderContext) BindTexture(unit int, t *Texture) error {
	if unit < 0 || unit >= MaxTextureUnits {
		return fmt.Errorf("opengl: texture unit %d not in [0,%d)", unit, MaxTextureUnits)
	}
	var id uint32
	if t != nil {
		id = t.id
	}
	c.bindTextureID(unit, id)
	return nil
}

func (c *RenderContext) bindTextureID(unit int, id uint32) {
	activate, bind := c.cache.setTexture(unit, id)
	if activate {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	}
	if bind {
		gl.BindTexture(gl.TEXTURE_2D, id)
	}
}

// Viewport sets the viewport rectangle.
func (c *RenderContext) Viewport(x, y, width, height int) {
	v := [4]int32{int32(x), int32(y), int32(width), int32(height)}
	if c.cache.setViewport(v) {
		gl.Viewport(v[0], v[1], v[2], v[3])
	}
}

// checkDraw requires a program and vertex array bound through the context.
func (c *RenderContext) checkDraw() error { return c.cache.drawable() }

// DrawArrays draws count vertices starting at first.
func (c *RenderContext) DrawArrays(mode Primitive, first, count int) error {
	if err := c.checkDraw(); err != nil {
		return err
	}
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
	return nil
}

// indexBytes is the byte offset of index offset in a uint32 element buffer.
func indexBytes(offset int) int { return offset * 4 }

// DrawElements draws count uint32 indices starting at index offset of the
// bound vertex array's element buffer.
func (c *RenderContext) DrawElements(mode Primitive, count, offset int) error {
	if err := c.checkDraw(); err != nil {
		return err
	}
	gl.DrawElements(uint32(mode), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(indexBytes(offset)))
	return nil
}

// DrawElementsBaseVertex is DrawElements with baseVertex added to every
// index.
func (c *RenderContext) DrawElementsBaseVertex(mode Primitive, count, offset, baseVertex int) error {
	if err := c.checkDraw(); err != nil {
		return err
	}
	gl.DrawElementsBaseVertex(uint32(mode), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(indexBytes(offset)), int32(baseVertex))
	return nil
}

// DrawArraysInstanced draws instances copies of count vertices.
func (c *RenderContext) DrawArraysInstanced(mode Primitive, first, count, instances int) error {
	if err := c.checkDraw(); err != nil {
		return err
	}
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
	return nil
}

// DrawElementsInstanced draws instances copies of count indices.
func (c *RenderContext) DrawElementsInstanced(mode Primitive, count, offset, instances int) error {
	if err := c.checkDraw(); err != nil {
		return err
	}
	gl.DrawElementsInstanced(uint32(mode), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(indexBytes(offset)), int32(instances))
	return nil
}
