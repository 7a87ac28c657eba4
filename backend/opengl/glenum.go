package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit/vertex"
)

// attribTypes maps the type enums glGetActiveAttrib reports to vertex types.
var attribTypes = map[uint32]vertex.Type{
	gl.FLOAT:        vertex.Scalar(vertex.Float),
	gl.FLOAT_VEC2:   vertex.Vec(vertex.Float, 2),
	gl.FLOAT_VEC3:   vertex.Vec(vertex.Float, 3),
	gl.FLOAT_VEC4:   vertex.Vec(vertex.Float, 4),
	gl.FLOAT_MAT2:   vertex.Mat(vertex.Float, 2, 2),
	gl.FLOAT_MAT3:   vertex.Mat(vertex.Float, 3, 3),
	gl.FLOAT_MAT4:   vertex.Mat(vertex.Float, 4, 4),
	gl.FLOAT_MAT2x3: vertex.Mat(vertex.Float, 2, 3),
	gl.FLOAT_MAT2x4: vertex.Mat(vertex.Float, 2, 4),
	gl.FLOAT_MAT3x2: vertex.Mat(vertex.Float, 3, 2),
	gl.FLOAT_MAT3x4: vertex.Mat(vertex.Float, 3, 4),
	gl.FLOAT_MAT4x2: vertex.Mat(vertex.Float, 4, 2),
	gl.FLOAT_MAT4x3: vertex.Mat(vertex.Float, 4, 3),

	gl.INT:      vertex.Scalar(vertex.Int),
	gl.INT_VEC2: vertex.Vec(vertex.Int, 2),
	gl.INT_VEC3: vertex.Vec(vertex.Int, 3),
	gl.INT_VEC4: vertex.Vec(vertex.Int, 4),

	gl.UNSIGNED_INT:      vertex.Scalar(vertex.UnsignedInt),
	gl.UNSIGNED_INT_VEC2: vertex.Vec(vertex.UnsignedInt, 2),
	gl.UNSIGNED_INT_VEC3: vertex.Vec(vertex.UnsignedInt, 3),
	gl.UNSIGNED_INT_VEC4: vertex.Vec(vertex.UnsignedInt, 4),

	gl.DOUBLE:        vertex.Scalar(vertex.Double),
	gl.DOUBLE_VEC2:   vertex.Vec(vertex.Double, 2),
	gl.DOUBLE_VEC3:   vertex.Vec(vertex.Double, 3),
	gl.DOUBLE_VEC4:   vertex.Vec(vertex.Double, 4),
	gl.DOUBLE_MAT2:   vertex.Mat(vertex.Double, 2, 2),
	gl.DOUBLE_MAT3:   vertex.Mat(vertex.Double, 3, 3),
	gl.DOUBLE_MAT4:   vertex.Mat(vertex.Double, 4, 4),
	gl.DOUBLE_MAT2x3: vertex.Mat(vertex.Double, 2, 3),
	gl.DOUBLE_MAT2x4: vertex.Mat(vertex.Double, 2, 4),
	gl.DOUBLE_MAT3x2: vertex.Mat(vertex.Double, 3, 2),
	gl.DOUBLE_MAT3x4: vertex.Mat(vertex.Double, 3, 4),
	gl.DOUBLE_MAT4x2: vertex.Mat(vertex.Double, 4, 2),
	gl.DOUBLE_MAT4x3: vertex.Mat(vertex.Double, 4, 3),
}

func attribType(xtype uint32) (vertex.Type, error) {
	t, ok := attribTypes[xtype]
	if !ok {
		return vertex.Type{}, fmt.Errorf("opengl: attribute type 0x%04X: %w", xtype, vertex.ErrUnsupportedFormat)
	}
	return t, nil
}

// glBaseType returns the component type enum for glVertexAttrib*Pointer.
func glBaseType(b vertex.BaseType) (uint32, error) {
	switch b {
	case vertex.Byte:
		return gl.BYTE, nil
	case vertex.UnsignedByte:
		return gl.UNSIGNED_BYTE, nil
	case vertex.Short:
		return gl.SHORT, nil
	case vertex.UnsignedShort:
		return gl.UNSIGNED_SHORT, nil
	case vertex.Int:
		return gl.INT, nil
	case vertex.UnsignedInt:
		return gl.UNSIGNED_INT, nil
	case vertex.Half:
		return gl.HALF_FLOAT, nil
	case vertex.Float:
		return gl.FLOAT, nil
	case vertex.Double:
		return gl.DOUBLE, nil
	}
	return 0, fmt.Errorf("opengl: base type %v: %w", b, vertex.ErrUnsupportedFormat)
}

// fetchKind selects the glVertexAttrib*Pointer variant for an attribute.
type fetchKind int

const (
	fetchFloat   fetchKind = iota // glVertexAttribPointer, converted to float
	fetchInteger                  // glVertexAttribIPointer
	fetchDouble                   // glVertexAttribLPointer
)

// fetchFor picks how an attribute reaches the shader. PassAsInteger keeps
// integer data as integers and doubles as 64-bit values; everything else is
// converted to float, normalized if requested.
func fetchFor(a vertex.Attribute) fetchKind {
	switch {
	case a.PassAsInteger && a.Base.IsInteger():
		return fetchInteger
	case a.PassAsInteger && a.Base == vertex.Double:
		return fetchDouble
	default:
		return fetchFloat
	}
}

// Usage is a buffer usage hint.
type Usage uint32

const (
	StaticDraw  Usage = gl.STATIC_DRAW
	DynamicDraw Usage = gl.DYNAMIC_DRAW
	StreamDraw  Usage = gl.STREAM_DRAW
)

// Primitive is a draw mode.
type Primitive uint32

const (
	Points        Primitive = gl.POINTS
	Lines         Primitive = gl.LINES
	LineStrip     Primitive = gl.LINE_STRIP
	Triangles     Primitive = gl.TRIANGLES
	TriangleStrip Primitive = gl.TRIANGLE_STRIP
	TriangleFan   Primitive = gl.TRIANGLE_FAN
)
