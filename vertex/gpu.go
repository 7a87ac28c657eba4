package vertex

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

type formatKey struct {
	base  BaseType
	rows  int
	class byte // 'f' float fetch, 'n' normalized, 'i' integer
}

var gpuFormats = map[formatKey]gputypes.VertexFormat{
	{UnsignedByte, 2, 'i'}: gputypes.VertexFormatUint8x2,
	{UnsignedByte, 4, 'i'}: gputypes.VertexFormatUint8x4,
	{Byte, 2, 'i'}:         gputypes.VertexFormatSint8x2,
	{Byte, 4, 'i'}:         gputypes.VertexFormatSint8x4,
	{UnsignedByte, 2, 'n'}: gputypes.VertexFormatUnorm8x2,
	{UnsignedByte, 4, 'n'}: gputypes.VertexFormatUnorm8x4,
	{Byte, 2, 'n'}:         gputypes.VertexFormatSnorm8x2,
	{Byte, 4, 'n'}:         gputypes.VertexFormatSnorm8x4,

	{UnsignedShort, 2, 'i'}: gputypes.VertexFormatUint16x2,
	{UnsignedShort, 4, 'i'}: gputypes.VertexFormatUint16x4,
	{Short, 2, 'i'}:         gputypes.VertexFormatSint16x2,
	{Short, 4, 'i'}:         gputypes.VertexFormatSint16x4,
	{UnsignedShort, 2, 'n'}: gputypes.VertexFormatUnorm16x2,
	{UnsignedShort, 4, 'n'}: gputypes.VertexFormatUnorm16x4,
	{Short, 2, 'n'}:         gputypes.VertexFormatSnorm16x2,
	{Short, 4, 'n'}:         gputypes.VertexFormatSnorm16x4,

	{Half, 2, 'f'}: gputypes.VertexFormatFloat16x2,
	{Half, 4, 'f'}: gputypes.VertexFormatFloat16x4,

	{Float, 1, 'f'}: gputypes.VertexFormatFloat32,
	{Float, 2, 'f'}: gputypes.VertexFormatFloat32x2,
	{Float, 3, 'f'}: gputypes.VertexFormatFloat32x3,
	{Float, 4, 'f'}: gputypes.VertexFormatFloat32x4,

	{UnsignedInt, 1, 'i'}: gputypes.VertexFormatUint32,
	{UnsignedInt, 2, 'i'}: gputypes.VertexFormatUint32x2,
	{UnsignedInt, 3, 'i'}: gputypes.VertexFormatUint32x3,
	{UnsignedInt, 4, 'i'}: gputypes.VertexFormatUint32x4,
	{Int, 1, 'i'}:         gputypes.VertexFormatSint32,
	{Int, 2, 'i'}:         gputypes.VertexFormatSint32x2,
	{Int, 3, 'i'}:         gputypes.VertexFormatSint32x3,
	{Int, 4, 'i'}:         gputypes.VertexFormatSint32x4,
}

// GPUFormat returns the WebGPU vertex format that fetches the attribute's
// bytes the same way the GL backend does.
func (a Attribute) GPUFormat() (gputypes.VertexFormat, error) {
	key := formatKey{base: a.Base, rows: a.Rows, class: 'f'}
	if a.Base.IsInteger() {
		switch {
		case a.PassAsInteger:
			key.class = 'i'
		case a.Normalized:
			key.class = 'n'
		}
	}
	f, ok := gpuFormats[key]
	if !ok {
		return f, fmt.Errorf("vertex: attribute %q (%s x%d): %w", a.Name, a.Base, a.Rows, ErrUnsupportedFormat)
	}
	return f, nil
}

// GPUBufferLayout describes the layout as a single WebGPU vertex buffer.
func (l *Layout) GPUBufferLayout() (gputypes.VertexBufferLayout, error) {
	return gpuBufferLayout(l.attrs, nil, l.stride)
}

// GPUBufferLayouts describes each block of the partition as a WebGPU
// vertex buffer, in block order.
func (p *Partition) GPUBufferLayouts() ([]gputypes.VertexBufferLayout, error) {
	out := make([]gputypes.VertexBufferLayout, len(p.blocks))
	for b, blk := range p.blocks {
		attrs := make([]Attribute, len(blk.attrs))
		for k, a := range blk.attrs {
			attrs[k] = p.layout.attrs[a]
		}
		bl, err := gpuBufferLayout(attrs, blk.offsets, blk.stride)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", b, err)
		}
		out[b] = bl
	}
	return out, nil
}

// gpuBufferLayout converts attrs, using offsets in place of each attribute's
// own offset when given. WebGPU steps a whole buffer per vertex or per
// instance, so all attributes must agree on a step rate of 0 or 1.
func gpuBufferLayout(attrs []Attribute, offsets []int, stride int) (gputypes.VertexBufferLayout, error) {
	bl := gputypes.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  make([]gputypes.VertexAttribute, 0, len(attrs)),
	}
	for i, a := range attrs {
		if a.InstanceStepRate > 1 || (i > 0 && a.InstanceStepRate != attrs[0].InstanceStepRate) {
			return gputypes.VertexBufferLayout{}, fmt.Errorf("vertex: attribute %q step rate %d: %w", a.Name, a.InstanceStepRate, ErrUnsupportedFormat)
		}
		f, err := a.GPUFormat()
		if err != nil {
			return gputypes.VertexBufferLayout{}, err
		}
		off := a.Offset
		if offsets != nil {
			off = offsets[i]
		}
		bl.Attributes = append(bl.Attributes, gputypes.VertexAttribute{
			Format:         f,
			Offset:         uint64(off),
			ShaderLocation: uint32(a.Location),
		})
	}
	if len(attrs) > 0 && attrs[0].InstanceStepRate == 1 {
		bl.StepMode = gputypes.VertexStepModeInstance
	}
	return bl, nil
}
