package opengl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit/vertex"
)

func TestAttribType(t *testing.T) {
	tests := []struct {
		xtype uint32
		want  vertex.Type
	}{
		{gl.FLOAT, vertex.Scalar(vertex.Float)},
		{gl.FLOAT_VEC2, vertex.Vec(vertex.Float, 2)},
		{gl.FLOAT_MAT3, vertex.Mat(vertex.Float, 3, 3)},
		{gl.FLOAT_MAT2x4, vertex.Mat(vertex.Float, 2, 4)},
		{gl.INT_VEC3, vertex.Vec(vertex.Int, 3)},
		{gl.UNSIGNED_INT, vertex.Scalar(vertex.UnsignedInt)},
		{gl.DOUBLE_VEC4, vertex.Vec(vertex.Double, 4)},
	}
	for _, tt := range tests {
		got, err := attribType(tt.xtype)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "type 0x%04X", tt.xtype)
	}

	_, err := attribType(gl.SAMPLER_2D)
	assert.ErrorIs(t, err, vertex.ErrUnsupportedFormat)
}

func TestAttribTypesAreValidShapes(t *testing.T) {
	for xtype, typ := range attribTypes {
		assert.GreaterOrEqual(t, typ.Rows, 1, "0x%04X", xtype)
		assert.LessOrEqual(t, typ.Rows, 4, "0x%04X", xtype)
		assert.GreaterOrEqual(t, typ.Columns, 1, "0x%04X", xtype)
		assert.LessOrEqual(t, typ.Columns, 4, "0x%04X", xtype)
	}
}

func TestGLBaseType(t *testing.T) {
	want := map[vertex.BaseType]uint32{
		vertex.Byte:          gl.BYTE,
		vertex.UnsignedByte:  gl.UNSIGNED_BYTE,
		vertex.Short:         gl.SHORT,
		vertex.UnsignedShort: gl.UNSIGNED_SHORT,
		vertex.Int:           gl.INT,
		vertex.UnsignedInt:   gl.UNSIGNED_INT,
		vertex.Half:          gl.HALF_FLOAT,
		vertex.Float:         gl.FLOAT,
		vertex.Double:        gl.DOUBLE,
	}
	for b, x := range want {
		got, err := glBaseType(b)
		require.NoError(t, err)
		assert.Equal(t, x, got, "%v", b)
	}
	_, err := glBaseType(vertex.BaseType(200))
	assert.ErrorIs(t, err, vertex.ErrUnsupportedFormat)
}

func TestFetchFor(t *testing.T) {
	tests := []struct {
		name string
		attr vertex.Attribute
		want fetchKind
	}{
		{"float", vertex.Attribute{Base: vertex.Float}, fetchFloat},
		{"normalized byte", vertex.Attribute{Base: vertex.UnsignedByte, Normalized: true}, fetchFloat},
		{"int as float", vertex.Attribute{Base: vertex.Int}, fetchFloat},
		{"int as integer", vertex.Attribute{Base: vertex.Int, PassAsInteger: true}, fetchInteger},
		{"ushort as integer", vertex.Attribute{Base: vertex.UnsignedShort, PassAsInteger: true}, fetchInteger},
		{"double as float", vertex.Attribute{Base: vertex.Double}, fetchFloat},
		{"double as double", vertex.Attribute{Base: vertex.Double, PassAsInteger: true}, fetchDouble},
		{"half ignores flag", vertex.Attribute{Base: vertex.Half, PassAsInteger: true}, fetchFloat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fetchFor(tt.attr))
		})
	}
}
