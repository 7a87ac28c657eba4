package vertex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrIndexOutOfRange is returned when an attribute, block, vertex or
	// override index does not exist in the layout or partition.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOffsetOutOfRange is returned when a byte window would extend past
	// the end of the buffer or attribute it addresses.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrAttributeReassigned is returned when one attribute is placed in
	// more than one partition block.
	ErrAttributeReassigned = errors.New("attribute assigned to more than one block")

	// ErrDuplicateOverride is returned when two type overrides name the same
	// attribute index.
	ErrDuplicateOverride = errors.New("duplicate type override")

	// ErrUnsupportedFormat is returned when an attribute has no equivalent
	// in the target vertex format table.
	ErrUnsupportedFormat = errors.New("unsupported vertex format")

	// ErrInvalidType is returned for shader attributes with an impossible shape.
	ErrInvalidType = errors.New("invalid attribute type")
)

func indexError(what string, i, n int) error {
	return fmt.Errorf("vertex: %s index %d not in [0,%d): %w", what, i, n, ErrIndexOutOfRange)
}

func negativeVertex(v int) error {
	return fmt.Errorf("vertex: negative vertex index %d: %w", v, ErrIndexOutOfRange)
}

// vertexOffset returns v*stride+off, failing instead of wrapping when the
// result does not fit in an int.
func vertexOffset(v, stride, off int) (int, error) {
	if v < 0 {
		return 0, negativeVertex(v)
	}
	if stride > 0 && v > (math.MaxInt-off)/stride {
		return 0, fmt.Errorf("vertex: vertex %d with stride %d overflows: %w", v, stride, ErrOffsetOutOfRange)
	}
	return v*stride + off, nil
}

// bufferSize returns the bytes n vertices of the given stride occupy.
func bufferSize(n, stride int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("vertex: negative vertex count %d: %w", n, ErrIndexOutOfRange)
	}
	if stride > 0 && n > math.MaxInt/stride {
		return 0, fmt.Errorf("vertex: %d vertices of stride %d overflow: %w", n, stride, ErrOffsetOutOfRange)
	}
	return n * stride, nil
}

// CheckWindow verifies that the n-byte window starting at offset lies inside
// a buffer of size bytes.
func CheckWindow(offset, n, size int) error {
	if offset < 0 || n < 0 || offset > size || n > size-offset {
		return fmt.Errorf("vertex: window [%d,%d) exceeds buffer size %d: %w", offset, offset+n, size, ErrOffsetOutOfRange)
	}
	return nil
}
