package opengl

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glkit"
	"github.com/go-theft-auto/glkit/vertex"
)

// Program is a linked vertex + fragment shader program.
type Program struct {
	id       uint32
	attrs    []vertex.ShaderAttribute
	uniforms map[string]int32
}

// NewProgram compiles and links a program from GLSL sources.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(id, logLength, nil, &log[0])
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", ErrProgramLink, strings.TrimRight(string(log), "\x00\n"))
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)

	p := &Program{id: id, uniforms: make(map[string]int32)}
	if p.attrs, err = p.reflectAttributes(); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	logger().Debug("linked program", "id", id, "attributes", len(p.attrs))
	return p, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, strings.TrimRight(string(log), "\x00\n"))
	}
	return shader, nil
}

// reflectAttributes lists the active vertex inputs sorted by location.
// Built-in inputs such as gl_VertexID are skipped.
func (p *Program) reflectAttributes() ([]vertex.ShaderAttribute, error) {
	var count, maxLen int32
	gl.GetProgramiv(p.id, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(p.id, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	if count == 0 {
		return nil, nil
	}

	buf := make([]uint8, maxLen+1)
	attrs := make([]vertex.ShaderAttribute, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(p.id, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		t, err := attribType(xtype)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		loc := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
		attrs = append(attrs, vertex.ShaderAttribute{
			Name:       strings.TrimSuffix(name, "[0]"),
			Type:       t,
			ArrayCount: int(size),
			Location:   int(loc),
		})
	}
	sortByLocation(attrs)
	return attrs, nil
}

func sortByLocation(attrs []vertex.ShaderAttribute) {
	slices.SortStableFunc(attrs, func(a, b vertex.ShaderAttribute) int {
		return cmp.Compare(a.Location, b.Location)
	})
}

// nameByLocation renames attrs to the input declared at the same location.
// Attributes with no matching input keep their GL name.
func nameByLocation(attrs, inputs []vertex.ShaderAttribute) {
	names := make(map[int]string, len(inputs))
	for _, in := range inputs {
		names[in.Location] = in.Name
	}
	for i := range attrs {
		if name, ok := names[attrs[i].Location]; ok {
			attrs[i].Name = name
		}
	}
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Attributes returns the program's active vertex inputs.
func (p *Program) Attributes() []vertex.ShaderAttribute {
	return slices.Clone(p.attrs)
}

// Layout derives a packed vertex layout from the program's inputs.
func (p *Program) Layout(opts ...vertex.LayoutOption) (*vertex.Layout, error) {
	return vertex.NewLayout(p.attrs, opts...)
}

// UniformLocation returns the location of a uniform, or -1 if the program
// has no active uniform of that name. Lookups are cached.
func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// The setters below act on the currently bound program; bind it with
// RenderContext.UseProgram first. Unknown uniforms are ignored.

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v [4]float32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetMat3 sets a mat3 uniform.
func (p *Program) SetMat3(name string, m glkit.Mat3) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
