package vertex

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

var order = binary.NativeEndian

// Data is CPU-side vertex memory shaped by a Layout. Its bytes can be
// uploaded to a GPU buffer as-is.
type Data struct {
	layout *Layout
	buf    []byte
	n      int
}

// NewData allocates zeroed storage for n vertices.
func NewData(l *Layout, n int) (*Data, error) {
	size, err := bufferSize(n, l.stride)
	if err != nil {
		return nil, err
	}
	return &Data{layout: l, buf: make([]byte, size), n: n}, nil
}

// Layout returns the layout the data is packed with.
func (d *Data) Layout() *Layout { return d.layout }

// Len returns the number of vertices.
func (d *Data) Len() int { return d.n }

// Bytes returns the backing memory. The slice is invalidated by Resize.
func (d *Data) Bytes() []byte { return d.buf }

// Resize changes the vertex count, keeping existing vertices. On error the
// data is unchanged.
func (d *Data) Resize(n int) error {
	size, err := bufferSize(n, d.layout.stride)
	if err != nil {
		return err
	}
	d.buf = resize(d.buf, size)
	d.n = n
	return nil
}

// Write copies raw bytes into attribute a of vertex v.
func (d *Data) Write(v, a int, raw []byte) error {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return err
	}
	if len(raw) > attr.Size() {
		return fmt.Errorf("vertex: %d bytes for %d-byte attribute %d: %w", len(raw), attr.Size(), a, ErrOffsetOutOfRange)
	}
	copy(d.buf[off:], raw)
	return nil
}

// Read returns the bytes of attribute a of vertex v. The slice aliases the
// backing memory.
func (d *Data) Read(v, a int) ([]byte, error) {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return nil, err
	}
	return d.buf[off : off+attr.Size()], nil
}

// SetFloat32s encodes vals into attribute a of vertex v using the
// attribute's storage type.
func (d *Data) SetFloat32s(v, a int, vals ...float32) error {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return err
	}
	return putFloats(d.buf[off:], attr, vals)
}

// Float32s decodes attribute a of vertex v.
func (d *Data) Float32s(v, a int) ([]float32, error) {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return nil, err
	}
	return getFloats(d.buf[off:], attr), nil
}

// SetInt32s stores integer values into attribute a of vertex v without
// normalization.
func (d *Data) SetInt32s(v, a int, vals ...int32) error {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return err
	}
	return putInts(d.buf[off:], attr, vals)
}

// SetUint32s is SetInt32s for unsigned values.
func (d *Data) SetUint32s(v, a int, vals ...uint32) error {
	attr, off, err := d.locate(v, a)
	if err != nil {
		return err
	}
	return putInts(d.buf[off:], attr, vals)
}

func (d *Data) locate(v, a int) (Attribute, int, error) {
	off, err := d.layout.Offset(v, a)
	if err != nil {
		return Attribute{}, 0, err
	}
	attr := d.layout.attrs[a]
	if err := CheckWindow(off, attr.Size(), len(d.buf)); err != nil {
		return Attribute{}, 0, err
	}
	return attr, off, nil
}

// BlockData is CPU-side memory for a Partition: one byte buffer per block,
// each with the block's own stride.
type BlockData struct {
	part   *Partition
	blocks [][]byte
	n      int
}

// NewBlockData allocates zeroed storage for n vertices in every block.
func NewBlockData(p *Partition, n int) (*BlockData, error) {
	sizes, err := p.blockSizes(n)
	if err != nil {
		return nil, err
	}
	bd := &BlockData{part: p, blocks: make([][]byte, p.Len()), n: n}
	for b, size := range sizes {
		bd.blocks[b] = make([]byte, size)
	}
	return bd, nil
}

// Partition returns the partition the data is packed with.
func (bd *BlockData) Partition() *Partition { return bd.part }

// Len returns the number of vertices.
func (bd *BlockData) Len() int { return bd.n }

// Block returns the backing memory of block b.
func (bd *BlockData) Block(b int) ([]byte, error) {
	if b < 0 || b >= len(bd.blocks) {
		return nil, indexError("block", b, len(bd.blocks))
	}
	return bd.blocks[b], nil
}

// Resize changes the vertex count of every block. On error no block is
// changed.
func (bd *BlockData) Resize(n int) error {
	sizes, err := bd.part.blockSizes(n)
	if err != nil {
		return err
	}
	for b, size := range sizes {
		bd.blocks[b] = resize(bd.blocks[b], size)
	}
	bd.n = n
	return nil
}

// SetFloat32s encodes vals into attribute a of vertex v in block b.
func (bd *BlockData) SetFloat32s(b, v, a int, vals ...float32) error {
	attr, buf, err := bd.locate(b, v, a)
	if err != nil {
		return err
	}
	return putFloats(buf, attr, vals)
}

// Float32s decodes attribute a of vertex v in block b.
func (bd *BlockData) Float32s(b, v, a int) ([]float32, error) {
	attr, buf, err := bd.locate(b, v, a)
	if err != nil {
		return nil, err
	}
	return getFloats(buf, attr), nil
}

// Write copies raw bytes into attribute a of vertex v in block b.
func (bd *BlockData) Write(b, v, a int, raw []byte) error {
	attr, buf, err := bd.locate(b, v, a)
	if err != nil {
		return err
	}
	if len(raw) > attr.Size() {
		return fmt.Errorf("vertex: %d bytes for %d-byte attribute %d: %w", len(raw), attr.Size(), a, ErrOffsetOutOfRange)
	}
	copy(buf, raw)
	return nil
}

func (bd *BlockData) locate(b, v, a int) (Attribute, []byte, error) {
	off, err := bd.part.Offset(b, v, a)
	if err != nil {
		return Attribute{}, nil, err
	}
	attr := bd.part.layout.attrs[a]
	if err := CheckWindow(off, attr.Size(), len(bd.blocks[b])); err != nil {
		return Attribute{}, nil, err
	}
	return attr, bd.blocks[b][off:], nil
}

func resize(buf []byte, size int) []byte {
	if size <= len(buf) {
		return buf[:size]
	}
	return append(buf, make([]byte, size-len(buf))...)
}

func checkCount(attr Attribute, n int) error {
	if n > attr.Rows {
		return fmt.Errorf("vertex: %d components for %d-component attribute %q: %w", n, attr.Rows, attr.Name, ErrOffsetOutOfRange)
	}
	return nil
}

func putFloats(dst []byte, attr Attribute, vals []float32) error {
	if err := checkCount(attr, len(vals)); err != nil {
		return err
	}
	size := attr.Base.Size()
	for i, v := range vals {
		putFloat(dst[i*size:], attr.Base, attr.Normalized, float64(v))
	}
	return nil
}

func getFloats(src []byte, attr Attribute) []float32 {
	size := attr.Base.Size()
	out := make([]float32, attr.Rows)
	for i := range out {
		out[i] = float32(getFloat(src[i*size:], attr.Base, attr.Normalized))
	}
	return out
}

func putInts[T int32 | uint32](dst []byte, attr Attribute, vals []T) error {
	if err := checkCount(attr, len(vals)); err != nil {
		return err
	}
	size := attr.Base.Size()
	for i, v := range vals {
		if attr.Base.IsInteger() {
			putInt(dst[i*size:], attr.Base, int64(v))
		} else {
			putFloat(dst[i*size:], attr.Base, false, float64(v))
		}
	}
	return nil
}

// normMax returns the value a normalized integer type maps to 1.0.
func normMax(b BaseType) float64 {
	switch b {
	case Byte:
		return math.MaxInt8
	case UnsignedByte:
		return math.MaxUint8
	case Short:
		return math.MaxInt16
	case UnsignedShort:
		return math.MaxUint16
	case Int:
		return math.MaxInt32
	case UnsignedInt:
		return math.MaxUint32
	}
	return 1
}

func putFloat(dst []byte, b BaseType, normalized bool, v float64) {
	switch b {
	case Half:
		order.PutUint16(dst, float16.Fromfloat32(float32(v)).Bits())
	case Float:
		order.PutUint32(dst, math.Float32bits(float32(v)))
	case Double:
		order.PutUint64(dst, math.Float64bits(v))
	default:
		if normalized {
			lo := 0.0
			if b.IsSigned() {
				lo = -1
			}
			v = math.Round(min(max(v, lo), 1) * normMax(b))
		}
		putInt(dst, b, int64(v))
	}
}

func getFloat(src []byte, b BaseType, normalized bool) float64 {
	switch b {
	case Half:
		return float64(float16.Frombits(order.Uint16(src)).Float32())
	case Float:
		return float64(math.Float32frombits(order.Uint32(src)))
	case Double:
		return math.Float64frombits(order.Uint64(src))
	}
	v := float64(getInt(src, b))
	if normalized {
		v /= normMax(b)
		if b.IsSigned() {
			v = max(v, -1)
		}
	}
	return v
}

func putInt(dst []byte, b BaseType, v int64) {
	switch b.Size() {
	case 1:
		dst[0] = byte(v)
	case 2:
		order.PutUint16(dst, uint16(v))
	case 4:
		order.PutUint32(dst, uint32(v))
	}
}

func getInt(src []byte, b BaseType) int64 {
	switch b {
	case Byte:
		return int64(int8(src[0]))
	case UnsignedByte:
		return int64(src[0])
	case Short:
		return int64(int16(order.Uint16(src)))
	case UnsignedShort:
		return int64(order.Uint16(src))
	case Int:
		return int64(int32(order.Uint32(src)))
	case UnsignedInt:
		return int64(order.Uint32(src))
	}
	return 0
}
