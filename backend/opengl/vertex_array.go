package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit/vertex"
)

// attribPointer is one glVertexAttrib*Pointer call.
type attribPointer struct {
	location   uint32
	size       int32
	xtype      uint32
	normalized bool
	stride     int32
	offset     uintptr
	fetch      fetchKind
	divisor    uint32
}

// pointersFor plans the attribute setup for attrs stored at the given
// byte offsets in a buffer with the given stride. Attributes without a
// location are skipped.
func pointersFor(attrs []vertex.Attribute, offsets []int, stride int) ([]attribPointer, error) {
	out := make([]attribPointer, 0, len(attrs))
	for i, a := range attrs {
		if a.Location < 0 {
			continue
		}
		xtype, err := glBaseType(a.Base)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		out = append(out, attribPointer{
			location:   uint32(a.Location),
			size:       int32(a.Rows),
			xtype:      xtype,
			normalized: a.Normalized,
			stride:     int32(stride),
			offset:     uintptr(offsets[i]),
			fetch:      fetchFor(a),
			divisor:    a.InstanceStepRate,
		})
	}
	return out, nil
}

func (p attribPointer) apply() {
	switch p.fetch {
	case fetchInteger:
		gl.VertexAttribIPointerWithOffset(p.location, p.size, p.xtype, p.stride, p.offset)
	case fetchDouble:
		gl.VertexAttribLPointerWithOffset(p.location, p.size, p.xtype, p.stride, p.offset)
	default:
		gl.VertexAttribPointerWithOffset(p.location, p.size, p.xtype, p.normalized, p.stride, p.offset)
	}
	gl.EnableVertexAttribArray(p.location)
	gl.VertexAttribDivisor(p.location, p.divisor)
}

// VertexArray records which buffers feed which attribute locations.
type VertexArray struct {
	id  uint32
	ctx *RenderContext
}

// NewVertexArray creates an empty vertex array. Binds go through ctx.
func NewVertexArray(ctx *RenderContext) *VertexArray {
	va := &VertexArray{ctx: ctx}
	gl.GenVertexArrays(1, &va.id)
	return va
}

// ID returns the GL vertex array name.
func (va *VertexArray) ID() uint32 { return va.id }

// AttachLayout feeds every attribute of vb's layout from vb.
func (va *VertexArray) AttachLayout(vb *VertexBuffer) error {
	l := vb.Layout()
	attrs := l.Attributes()
	offsets := make([]int, len(attrs))
	for i, a := range attrs {
		offsets[i] = a.Offset
	}
	ptrs, err := pointersFor(attrs, offsets, l.Stride())
	if err != nil {
		return err
	}
	return va.attach(vb.ID(), ptrs, "attach layout")
}

// AttachPartition feeds each block's attributes from that block's buffer.
// Attributes outside every block stay disabled.
func (va *VertexArray) AttachPartition(m *MultiVertexBuffer) error {
	p := m.Partition()
	l := p.Layout()
	for b := 0; b < p.Len(); b++ {
		idx, err := p.Block(b)
		if err != nil {
			return err
		}
		stride, err := p.BlockStride(b)
		if err != nil {
			return err
		}
		attrs := make([]vertex.Attribute, len(idx))
		offsets := make([]int, len(idx))
		for k, a := range idx {
			if attrs[k], err = l.Attribute(a); err != nil {
				return err
			}
			if offsets[k], err = p.AttributeOffset(b, a); err != nil {
				return err
			}
		}
		ptrs, err := pointersFor(attrs, offsets, stride)
		if err != nil {
			return fmt.Errorf("block %d: %w", b, err)
		}
		blk, _ := m.Block(b)
		if err := va.attach(blk.ID(), ptrs, fmt.Sprintf("attach block %d", b)); err != nil {
			return err
		}
	}
	return nil
}

func (va *VertexArray) attach(buffer uint32, ptrs []attribPointer, op string) error {
	va.ctx.BindVertexArray(va)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	for _, p := range ptrs {
		p.apply()
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return CheckError(op)
}

// SetIndexBuffer makes ib the element buffer for indexed draws.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) {
	va.ctx.BindVertexArray(va)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ID())
}

// Delete releases the vertex array. Buffers attached to it are not deleted.
func (va *VertexArray) Delete() {
	if va.id == 0 {
		return
	}
	if va.ctx.cache.vertexArray.id == va.id {
		va.ctx.BindVertexArray(nil)
	}
	gl.DeleteVertexArrays(1, &va.id)
	va.id = 0
}
