package shadersrc

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/go-theft-auto/glkit/vertex"
)

var (
	// ErrNoEntryPoint is returned when a module has no entry point of the
	// requested name and stage.
	ErrNoEntryPoint = errors.New("shadersrc: entry point not found")
	// ErrUnsupportedInput is returned for vertex inputs that cannot be fed
	// from a vertex buffer, such as booleans.
	ErrUnsupportedInput = errors.New("shadersrc: unsupported vertex input")
)

// Module is a parsed and validated WGSL module.
type Module struct {
	ir *ir.Module
}

// ParseWGSL parses, lowers and validates WGSL source.
func ParseWGSL(src string) (*Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shadersrc: %w", err)
	}
	m, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shadersrc: lower: %w", err)
	}
	verrs, err := naga.Validate(m)
	if err != nil {
		return nil, fmt.Errorf("shadersrc: validate: %w", err)
	}
	if len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, e := range verrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("shadersrc: validate: %s", strings.Join(msgs, "; "))
	}
	return &Module{ir: m}, nil
}

// EntryPoints lists the module's entry point names.
func (m *Module) EntryPoints() []string {
	out := make([]string, len(m.ir.EntryPoints))
	for i, ep := range m.ir.EntryPoints {
		out[i] = ep.Name
	}
	return out
}

// entryPoint finds the named entry point of stage, or the first one of that
// stage when name is empty.
func (m *Module) entryPoint(name string, stage ir.ShaderStage) (*ir.EntryPoint, error) {
	for i := range m.ir.EntryPoints {
		ep := &m.ir.EntryPoints[i]
		if ep.Stage == stage && (name == "" || ep.Name == name) {
			return ep, nil
		}
	}
	if name == "" {
		return nil, ErrNoEntryPoint
	}
	return nil, fmt.Errorf("%w: %q", ErrNoEntryPoint, name)
}

// VertexInputs returns the @location inputs of the vertex entry point,
// sorted by location. Inputs declared as members of a struct argument are
// included under their member names. Builtins are skipped.
//
// The generated GLSL names vertex inputs by location (_p2vs_location0, ...),
// so these are the only source of the WGSL names.
func (m *Module) VertexInputs(entry string) ([]vertex.ShaderAttribute, error) {
	ep, err := m.entryPoint(entry, ir.StageVertex)
	if err != nil {
		return nil, err
	}
	fn := &ep.Function

	var out []vertex.ShaderAttribute
	add := func(name string, th ir.TypeHandle, b *ir.Binding) error {
		if b == nil {
			return nil
		}
		loc, ok := (*b).(ir.LocationBinding)
		if !ok {
			return nil
		}
		t, err := m.attributeType(th)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, vertex.ShaderAttribute{Name: name, Type: t, Location: int(loc.Location)})
		return nil
	}

	for _, arg := range fn.Arguments {
		if arg.Binding != nil {
			if err := add(arg.Name, arg.Type, arg.Binding); err != nil {
				return nil, err
			}
			continue
		}
		st, ok := m.typeInner(arg.Type).(ir.StructType)
		if !ok {
			continue
		}
		for _, mem := range st.Members {
			if err := add(mem.Name, mem.Type, mem.Binding); err != nil {
				return nil, err
			}
		}
	}
	slices.SortStableFunc(out, func(a, b vertex.ShaderAttribute) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return out, nil
}

func (m *Module) typeInner(h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(m.ir.Types) {
		return nil
	}
	return m.ir.Types[h].Inner
}

func (m *Module) attributeType(h ir.TypeHandle) (vertex.Type, error) {
	switch t := m.typeInner(h).(type) {
	case ir.ScalarType:
		b, err := baseType(t)
		if err != nil {
			return vertex.Type{}, err
		}
		return vertex.Scalar(b), nil
	case ir.VectorType:
		b, err := baseType(t.Scalar)
		if err != nil {
			return vertex.Type{}, err
		}
		return vertex.Vec(b, int(t.Size)), nil
	case ir.MatrixType:
		b, err := baseType(t.Scalar)
		if err != nil {
			return vertex.Type{}, err
		}
		return vertex.Mat(b, int(t.Columns), int(t.Rows)), nil
	default:
		return vertex.Type{}, fmt.Errorf("%w: type %T", ErrUnsupportedInput, t)
	}
}

func baseType(s ir.ScalarType) (vertex.BaseType, error) {
	switch {
	case s.Kind == ir.ScalarFloat && s.Width == 2:
		return vertex.Half, nil
	case s.Kind == ir.ScalarFloat && s.Width == 4:
		return vertex.Float, nil
	case s.Kind == ir.ScalarFloat && s.Width == 8:
		return vertex.Double, nil
	case s.Kind == ir.ScalarSint && s.Width == 4:
		return vertex.Int, nil
	case s.Kind == ir.ScalarUint && s.Width == 4:
		return vertex.UnsignedInt, nil
	}
	return 0, fmt.Errorf("%w: scalar kind %d width %d", ErrUnsupportedInput, s.Kind, s.Width)
}

// GLSLOptions selects what WGSLToGLSL generates.
type GLSLOptions struct {
	// EntryPoint names the entry point to translate. Empty picks the first.
	EntryPoint string
	// Version defaults to GLSL 4.10 core.
	Version glsl.Version
}

// GLSL translates one entry point of the module to GLSL.
func (m *Module) GLSL(opts GLSLOptions) (string, error) {
	if opts.Version == (glsl.Version{}) {
		opts.Version = glsl.Version410
	}
	if opts.EntryPoint != "" && !slices.Contains(m.EntryPoints(), opts.EntryPoint) {
		return "", fmt.Errorf("%w: %q", ErrNoEntryPoint, opts.EntryPoint)
	}
	src, _, err := glsl.Compile(m.ir, glsl.Options{
		LangVersion: opts.Version,
		EntryPoint:  opts.EntryPoint,
	})
	if err != nil {
		return "", fmt.Errorf("shadersrc: glsl %s: %w", opts.EntryPoint, err)
	}
	return src, nil
}

// ReflectWGSL parses src and returns the inputs of its vertex entry point.
func ReflectWGSL(src, entry string) ([]vertex.ShaderAttribute, error) {
	m, err := ParseWGSL(src)
	if err != nil {
		return nil, err
	}
	return m.VertexInputs(entry)
}

// WGSLToGLSL cross-compiles one entry point of src to GLSL.
func WGSLToGLSL(src string, opts GLSLOptions) (string, error) {
	m, err := ParseWGSL(src)
	if err != nil {
		return "", err
	}
	return m.GLSL(opts)
}

// ProgramSources is a vertex and fragment GLSL pair.
type ProgramSources struct {
	Vertex   string
	Fragment string
	// Inputs is set for WGSL sources only.
	Inputs []vertex.ShaderAttribute
}

// Program translates the vertex and fragment entry points of the module.
// Empty names pick the first entry point of each stage. Inputs holds the
// vertex entry point's inputs under their WGSL names.
func (m *Module) Program(vertexEntry, fragmentEntry string, version glsl.Version) (ProgramSources, error) {
	vs, err := m.entryPoint(vertexEntry, ir.StageVertex)
	if err != nil {
		return ProgramSources{}, fmt.Errorf("vertex: %w", err)
	}
	fs, err := m.entryPoint(fragmentEntry, ir.StageFragment)
	if err != nil {
		return ProgramSources{}, fmt.Errorf("fragment: %w", err)
	}
	var p ProgramSources
	if p.Inputs, err = m.VertexInputs(vs.Name); err != nil {
		return ProgramSources{}, err
	}
	if p.Vertex, err = m.GLSL(GLSLOptions{EntryPoint: vs.Name, Version: version}); err != nil {
		return ProgramSources{}, err
	}
	if p.Fragment, err = m.GLSL(GLSLOptions{EntryPoint: fs.Name, Version: version}); err != nil {
		return ProgramSources{}, err
	}
	return p, nil
}
