package vertex

import (
	"fmt"
	"slices"
)

type block struct {
	attrs   []int // parent layout indices, caller order
	offsets []int // block-local offsets, parallel to attrs
	stride  int
}

// Partition splits a Layout's attributes into blocks, each stored in a buffer
// of its own with an independent stride. Attributes not placed in any block
// cannot be addressed through the partition.
type Partition struct {
	layout *Layout
	blocks []block
	owner  []int // owner[attr] = block index, or -1
}

// NewPartition groups layout attributes into blocks. Each argument lists
// the parent-layout attribute indices of one block; their order decides the
// block-local offsets.
func NewPartition(l *Layout, blocks ...[]int) (*Partition, error) {
	p := &Partition{
		layout: l,
		blocks: make([]block, len(blocks)),
		owner:  make([]int, l.Len()),
	}
	for i := range p.owner {
		p.owner[i] = -1
	}
	for b, attrs := range blocks {
		blk := block{
			attrs:   slices.Clone(attrs),
			offsets: make([]int, len(attrs)),
		}
		for k, a := range attrs {
			if a < 0 || a >= l.Len() {
				return nil, indexError("attribute", a, l.Len())
			}
			if prev := p.owner[a]; prev >= 0 {
				return nil, fmt.Errorf("vertex: attribute %d in blocks %d and %d: %w", a, prev, b, ErrAttributeReassigned)
			}
			p.owner[a] = b
			blk.offsets[k] = blk.stride
			blk.stride += l.attrs[a].Size()
		}
		p.blocks[b] = blk
	}
	return p, nil
}

// Layout returns the partitioned layout.
func (p *Partition) Layout() *Layout { return p.layout }

// Len returns the number of blocks.
func (p *Partition) Len() int { return len(p.blocks) }

// Block returns the parent-layout attribute indices of block b in block order.
func (p *Partition) Block(b int) ([]int, error) {
	if b < 0 || b >= len(p.blocks) {
		return nil, indexError("block", b, len(p.blocks))
	}
	return slices.Clone(p.blocks[b].attrs), nil
}

// BlockStride returns the per-vertex size of block b.
func (p *Partition) BlockStride(b int) (int, error) {
	if b < 0 || b >= len(p.blocks) {
		return 0, indexError("block", b, len(p.blocks))
	}
	return p.blocks[b].stride, nil
}

// BlockOf returns the block that holds attribute attr.
func (p *Partition) BlockOf(attr int) (int, bool) {
	if attr < 0 || attr >= len(p.owner) || p.owner[attr] < 0 {
		return -1, false
	}
	return p.owner[attr], true
}

// AttributeOffset returns the block-local offset of attribute attr, which
// must belong to block b.
func (p *Partition) AttributeOffset(b, attr int) (int, error) {
	if b < 0 || b >= len(p.blocks) {
		return 0, indexError("block", b, len(p.blocks))
	}
	blk := &p.blocks[b]
	if k := slices.Index(blk.attrs, attr); k >= 0 {
		return blk.offsets[k], nil
	}
	return 0, fmt.Errorf("vertex: attribute %d not in block %d: %w", attr, b, ErrIndexOutOfRange)
}

func (p *Partition) blockSizes(n int) ([]int, error) {
	sizes := make([]int, len(p.blocks))
	for b, blk := range p.blocks {
		size, err := bufferSize(n, blk.stride)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", b, err)
		}
		sizes[b] = size
	}
	return sizes, nil
}

// Offset returns the byte offset of attribute attr of vertex v within the
// buffer backing block b.
func (p *Partition) Offset(b, v, attr int) (int, error) {
	off, err := p.AttributeOffset(b, attr)
	if err != nil {
		return 0, err
	}
	return vertexOffset(v, p.blocks[b].stride, off)
}
