package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit/vertex"
)

// byteWindow converts a vertex range to the byte range it covers in a buffer
// of size bytes with the given stride.
func byteWindow(stride, first, n, size int) (offset, length int, err error) {
	offset, length = first*stride, n*stride
	if first < 0 || n < 0 {
		return 0, 0, fmt.Errorf("opengl: vertex range [%d,%d): %w", first, first+n, vertex.ErrOffsetOutOfRange)
	}
	if err := vertex.CheckWindow(offset, length, size); err != nil {
		return 0, 0, err
	}
	return offset, length, nil
}

// glBuffer is one GL buffer object and the number of bytes allocated for
// it. Uploads go through the copy-write binding point so they never disturb
// the element buffer recorded in the bound vertex array.
type glBuffer struct {
	id    uint32
	usage Usage
	size  int
}

func newGLBuffer(usage Usage) glBuffer {
	b := glBuffer{usage: usage}
	gl.GenBuffers(1, &b.id)
	return b
}

func dataPtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

// upload replaces the whole buffer, reallocating when the size changed.
func (b *glBuffer) upload(ptr unsafe.Pointer, size int, op string) error {
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	if size != b.size {
		gl.BufferData(gl.COPY_WRITE_BUFFER, size, ptr, uint32(b.usage))
		b.size = size
	} else if size > 0 {
		gl.BufferSubData(gl.COPY_WRITE_BUFFER, 0, size, ptr)
	}
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	return CheckError(op)
}

// uploadRange copies data[offset:offset+length] into the same range of the
// buffer. A buffer whose allocation does not match data is reallocated in
// full instead.
func (b *glBuffer) uploadRange(data []byte, offset, length int, op string) error {
	if b.size != len(data) {
		return b.upload(dataPtr(data), len(data), op)
	}
	if length == 0 {
		return nil
	}
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferSubData(gl.COPY_WRITE_BUFFER, offset, length, gl.Ptr(data[offset:]))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	return CheckError(op)
}

func (b *glBuffer) delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
		b.size = 0
	}
}

// VertexBuffer is an interleaved GL vertex buffer mirrored by CPU-side
// vertex.Data. Edit the data, then Upload or UploadRange to send it.
type VertexBuffer struct {
	buf  glBuffer
	data *vertex.Data
}

// NewVertexBuffer allocates n zeroed vertices of layout l. Nothing is sent
// to the GPU until the first upload.
func NewVertexBuffer(l *vertex.Layout, n int, usage Usage) (*VertexBuffer, error) {
	d, err := vertex.NewData(l, n)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	return &VertexBuffer{buf: newGLBuffer(usage), data: d}, nil
}

// ID returns the GL buffer name.
func (vb *VertexBuffer) ID() uint32 { return vb.buf.id }

// Layout returns the buffer's vertex layout.
func (vb *VertexBuffer) Layout() *vertex.Layout { return vb.data.Layout() }

// Data returns the CPU-side vertex data.
func (vb *VertexBuffer) Data() *vertex.Data { return vb.data }

// Len returns the vertex count.
func (vb *VertexBuffer) Len() int { return vb.data.Len() }

// Resize changes the vertex count of the CPU-side data. The GPU buffer is
// reallocated on the next upload.
func (vb *VertexBuffer) Resize(n int) error { return vb.data.Resize(n) }

// Wrap makes d the CPU-side data of the buffer. d must use the buffer's
// layout.
func (vb *VertexBuffer) Wrap(d *vertex.Data) error {
	if d.Layout() != vb.data.Layout() {
		return ErrLayoutMismatch
	}
	vb.data = d
	return nil
}

// Upload sends every vertex.
func (vb *VertexBuffer) Upload() error {
	buf := vb.data.Bytes()
	return vb.buf.upload(dataPtr(buf), len(buf), "upload vertex buffer")
}

// UploadRange sends vertices [first, first+n).
func (vb *VertexBuffer) UploadRange(first, n int) error {
	buf := vb.data.Bytes()
	off, length, err := byteWindow(vb.data.Layout().Stride(), first, n, len(buf))
	if err != nil {
		return err
	}
	return vb.buf.uploadRange(buf, off, length, "upload vertex range")
}

// Delete releases the GL buffer.
func (vb *VertexBuffer) Delete() { vb.buf.delete() }

// MultiVertexBuffer stores a partitioned layout in one GL buffer per block.
type MultiVertexBuffer struct {
	data   *vertex.BlockData
	blocks []*VertexBufferBlock
}

// VertexBufferBlock is the GL buffer holding one partition block.
type VertexBufferBlock struct {
	buf   glBuffer
	index int
	owner *MultiVertexBuffer
}

// NewMultiVertexBuffer allocates n zeroed vertices in every block of p.
func NewMultiVertexBuffer(p *vertex.Partition, n int, usage Usage) (*MultiVertexBuffer, error) {
	d, err := vertex.NewBlockData(p, n)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	m := &MultiVertexBuffer{data: d, blocks: make([]*VertexBufferBlock, p.Len())}
	for b := range m.blocks {
		m.blocks[b] = &VertexBufferBlock{buf: newGLBuffer(usage), index: b, owner: m}
	}
	return m, nil
}

// Partition returns the buffer's partition.
func (m *MultiVertexBuffer) Partition() *vertex.Partition { return m.data.Partition() }

// Data returns the CPU-side block data.
func (m *MultiVertexBuffer) Data() *vertex.BlockData { return m.data }

// Len returns the vertex count.
func (m *MultiVertexBuffer) Len() int { return m.data.Len() }

// Resize changes the vertex count of every block.
func (m *MultiVertexBuffer) Resize(n int) error { return m.data.Resize(n) }

// Block returns the GL buffer of block b.
func (m *MultiVertexBuffer) Block(b int) (*VertexBufferBlock, error) {
	if b < 0 || b >= len(m.blocks) {
		return nil, fmt.Errorf("opengl: block %d of %d: %w", b, len(m.blocks), vertex.ErrIndexOutOfRange)
	}
	return m.blocks[b], nil
}

// Upload sends every block.
func (m *MultiVertexBuffer) Upload() error {
	for _, blk := range m.blocks {
		if err := blk.Upload(); err != nil {
			return err
		}
	}
	return nil
}

// UploadRange sends vertices [first, first+n) of block b.
func (m *MultiVertexBuffer) UploadRange(b, first, n int) error {
	blk, err := m.Block(b)
	if err != nil {
		return err
	}
	return blk.UploadRange(first, n)
}

// Delete releases every block's GL buffer.
func (m *MultiVertexBuffer) Delete() {
	for _, blk := range m.blocks {
		blk.buf.delete()
	}
}

// ID returns the GL buffer name.
func (blk *VertexBufferBlock) ID() uint32 { return blk.buf.id }

// Index returns the block's index in the partition.
func (blk *VertexBufferBlock) Index() int { return blk.index }

// Stride returns the block's vertex stride in bytes.
func (blk *VertexBufferBlock) Stride() int {
	s, _ := blk.owner.data.Partition().BlockStride(blk.index)
	return s
}

// Upload sends the whole block.
func (blk *VertexBufferBlock) Upload() error {
	data, err := blk.owner.data.Block(blk.index)
	if err != nil {
		return err
	}
	return blk.buf.upload(dataPtr(data), len(data), fmt.Sprintf("upload block %d", blk.index))
}

// UploadRange sends vertices [first, first+n) of the block.
func (blk *VertexBufferBlock) UploadRange(first, n int) error {
	data, err := blk.owner.data.Block(blk.index)
	if err != nil {
		return err
	}
	off, length, err := byteWindow(blk.Stride(), first, n, len(data))
	if err != nil {
		return err
	}
	return blk.buf.uploadRange(data, off, length, fmt.Sprintf("upload block %d range", blk.index))
}

// IndexBuffer is a GL element buffer of uint32 indices.
type IndexBuffer struct {
	buf glBuffer
	n   int
}

// NewIndexBuffer creates an empty element buffer.
func NewIndexBuffer(usage Usage) *IndexBuffer {
	return &IndexBuffer{buf: newGLBuffer(usage)}
}

// ID returns the GL buffer name.
func (ib *IndexBuffer) ID() uint32 { return ib.buf.id }

// Len returns the number of indices last uploaded.
func (ib *IndexBuffer) Len() int { return ib.n }

// Set uploads indices, replacing the previous contents.
func (ib *IndexBuffer) Set(indices []uint32) error {
	ib.n = len(indices)
	return ib.buf.upload(dataPtr(indices), 4*len(indices), "upload indices")
}

// Delete releases the GL buffer.
func (ib *IndexBuffer) Delete() { ib.buf.delete() }
