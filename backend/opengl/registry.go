package opengl

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/naga/glsl"

	"github.com/go-theft-auto/glkit/shadersrc"
)

type programKey struct {
	vertex, fragment string
	vars             string
}

// varsKey renders template variables in a stable order so equal maps
// produce equal keys.
func varsKey(vars map[string]any) string {
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&sb, "%s=%#v;", k, vars[k])
	}
	return sb.String()
}

// ProgramRegistry caches programs by source paths and template variables.
type ProgramRegistry struct {
	dir      string
	version  glsl.Version
	programs map[programKey]*Program
}

// NewProgramRegistry resolves relative paths against dir. WGSL sources
// are translated to GLSL 4.10.
func NewProgramRegistry(dir string) *ProgramRegistry {
	return &ProgramRegistry{
		dir:      dir,
		version:  glsl.Version410,
		programs: make(map[programKey]*Program),
	}
}

func (r *ProgramRegistry) path(p string) string {
	if r.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.dir, p)
}

// Load returns the program built from the given sources, compiling it on
// first use. GLSL sources are expanded as templates with vars. A ".wgsl"
// vertex path holds both stages; fragmentPath is then ignored and vars may
// name the entry points as "vertex_entry" and "fragment_entry". The
// attributes of a WGSL program carry their WGSL names, matched by location.
func (r *ProgramRegistry) Load(vertexPath, fragmentPath string, vars map[string]any) (*Program, error) {
	key := programKey{vertex: vertexPath, fragment: fragmentPath, vars: varsKey(vars)}
	if p, ok := r.programs[key]; ok {
		return p, nil
	}

	var src shadersrc.ProgramSources
	var err error
	if filepath.Ext(vertexPath) == ".wgsl" {
		src, err = r.wgslSources(vertexPath, vars)
	} else {
		src, err = r.glslSources(vertexPath, fragmentPath, vars)
	}
	if err != nil {
		return nil, err
	}

	p, err := NewProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("program %s + %s: %w", vertexPath, fragmentPath, err)
	}
	nameByLocation(p.attrs, src.Inputs)
	r.programs[key] = p
	logger().Debug("cached program", "vertex", vertexPath, "fragment", fragmentPath, "count", len(r.programs))
	return p, nil
}

func (r *ProgramRegistry) glslSources(vertexPath, fragmentPath string, vars map[string]any) (shadersrc.ProgramSources, error) {
	expand := func(path string) (string, error) {
		t, err := shadersrc.LoadTemplate(r.path(path))
		if err != nil {
			return "", err
		}
		return t.Expand(vars)
	}
	var src shadersrc.ProgramSources
	var err error
	if src.Vertex, err = expand(vertexPath); err != nil {
		return src, err
	}
	src.Fragment, err = expand(fragmentPath)
	return src, err
}

func (r *ProgramRegistry) wgslSources(path string, vars map[string]any) (shadersrc.ProgramSources, error) {
	b, err := os.ReadFile(r.path(path))
	if err != nil {
		return shadersrc.ProgramSources{}, fmt.Errorf("opengl: %w", err)
	}
	m, err := shadersrc.ParseWGSL(string(b))
	if err != nil {
		return shadersrc.ProgramSources{}, fmt.Errorf("%s: %w", path, err)
	}
	vsEntry, _ := vars["vertex_entry"].(string)
	fsEntry, _ := vars["fragment_entry"].(string)
	return m.Program(vsEntry, fsEntry, r.version)
}

// Len returns the number of cached programs.
func (r *ProgramRegistry) Len() int { return len(r.programs) }

// Delete releases every cached program.
func (r *ProgramRegistry) Delete() {
	for k, p := range r.programs {
		p.Delete()
		delete(r.programs, k)
	}
}

type textureKey struct {
	path string
	opts TextureOptions
}

// TextureRegistry caches textures by file path and options.
type TextureRegistry struct {
	dir      string
	textures map[textureKey]*Texture
}

// NewTextureRegistry resolves relative paths against dir.
func NewTextureRegistry(dir string) *TextureRegistry {
	return &TextureRegistry{dir: dir, textures: make(map[textureKey]*Texture)}
}

// Load returns the texture for path, decoding and uploading it on first use.
func (r *TextureRegistry) Load(path string, opts TextureOptions) (*Texture, error) {
	key := textureKey{path: path, opts: opts}
	if t, ok := r.textures[key]; ok {
		return t, nil
	}
	full := path
	if r.dir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(r.dir, path)
	}
	t, err := LoadTexture(full, opts)
	if err != nil {
		return nil, err
	}
	r.textures[key] = t
	return t, nil
}

// Len returns the number of cached textures.
func (r *TextureRegistry) Len() int { return len(r.textures) }

// Delete releases every cached texture.
func (r *TextureRegistry) Delete() {
	for k, t := range r.textures {
		t.Delete()
		delete(r.textures, k)
	}
}
