package glkit

import "github.com/go-theft-auto/glkit/vertex"

// DrawCmd is one indexed draw over a range of a SpriteBatch.
// Commands are split by texture and clip rectangle.
type DrawCmd struct {
	ElemCount    uint32     // Number of indices to draw
	ClipRect     [4]float32 // Clip rectangle (x1, y1, x2, y2)
	TextureID    uint32     // GL texture name (0 = no texture)
	VertexOffset uint32     // Base vertex for the command's indices
	IndexOffset  uint32     // First index in Indices
}

// noClip is effectively unbounded.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// SpriteBatch accumulates codex primitives for one frame into vertex memory
// shaped by a layout, plus a uint32 index list and draw commands. Indices
// are relative to each command's VertexOffset.
type SpriteBatch struct {
	Indices []uint32
	Cmds    []DrawCmd

	data *vertex.Data

	clipStack    [][4]float32
	currentClip  [4]float32
	textureID    uint32
	cmdOffset    uint32 // Vertex offset for current command
	idxCmdOffset uint32 // Index offset for current command
}

// NewSpriteBatch creates an empty batch packing into layout l.
func NewSpriteBatch(l *vertex.Layout) *SpriteBatch {
	d, _ := vertex.NewData(l, 0) // zero vertices always fit
	b := &SpriteBatch{data: d}
	b.Clear()
	return b
}

// Layout returns the vertex layout of the batch.
func (b *SpriteBatch) Layout() *vertex.Layout { return b.data.Layout() }

// Data returns the packed vertices.
func (b *SpriteBatch) Data() *vertex.Data { return b.data }

// Clear resets the batch for a new frame, keeping allocated capacity.
func (b *SpriteBatch) Clear() {
	_ = b.data.Resize(0)
	b.Indices = b.Indices[:0]
	b.Cmds = b.Cmds[:0]
	b.clipStack = b.clipStack[:0]
	b.currentClip = noClip
	b.textureID = 0
	b.cmdOffset = 0
	b.idxCmdOffset = 0
}

// PushClipRect restricts subsequent primitives to r.
func (b *SpriteBatch) PushClipRect(r Rect) {
	b.clipStack = append(b.clipStack, b.currentClip)
	b.currentClip = r.Corners()
	b.splitDraw()
}

// PopClipRect restores the previous clip rectangle.
func (b *SpriteBatch) PopClipRect() {
	n := len(b.clipStack)
	if n > 0 {
		b.currentClip = b.clipStack[n-1]
		b.clipStack = b.clipStack[:n-1]
		b.splitDraw()
	}
}

// SetTexture sets the texture for subsequent primitives.
func (b *SpriteBatch) SetTexture(textureID uint32) {
	if b.textureID != textureID {
		b.textureID = textureID
		b.splitDraw()
	}
}

// splitDraw finalizes the current command and starts a new one.
func (b *SpriteBatch) splitDraw() {
	b.closeCommand()
	b.Cmds = append(b.Cmds, DrawCmd{
		ClipRect:     b.currentClip,
		TextureID:    b.textureID,
		VertexOffset: uint32(b.data.Len()),
		IndexOffset:  uint32(len(b.Indices)),
	})
	b.cmdOffset = uint32(b.data.Len())
	b.idxCmdOffset = uint32(len(b.Indices))
}

func (b *SpriteBatch) closeCommand() {
	if len(b.Cmds) > 0 {
		last := &b.Cmds[len(b.Cmds)-1]
		last.ElemCount = uint32(len(b.Indices)) - b.idxCmdOffset
	}
}

// Add packs c as a quad with the current texture and clip rectangle.
func (b *SpriteBatch) Add(c Codex) error {
	if len(b.Cmds) == 0 {
		b.splitDraw()
	}
	first := b.data.Len()
	if err := b.data.Resize(first + c.VertexCount()); err != nil {
		return err
	}
	if err := Pack(b.data, first, c); err != nil {
		_ = b.data.Resize(first)
		return err
	}
	base := uint32(first) - b.cmdOffset
	for _, i := range quadIndices {
		b.Indices = append(b.Indices, base+i)
	}
	return nil
}

// Finalize closes the last command and drops empty ones.
// Call it after all primitives are added.
func (b *SpriteBatch) Finalize() {
	b.closeCommand()
	filtered := b.Cmds[:0]
	for _, cmd := range b.Cmds {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	b.Cmds = filtered
}

// Vertices returns the number of packed vertices.
func (b *SpriteBatch) Vertices() int { return b.data.Len() }
