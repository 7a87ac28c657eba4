// Package shadersrc loads shader source text: templated GLSL, and WGSL that
// is reflected and cross-compiled to GLSL with naga.
package shadersrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Template is shader source with {{ .Name }} placeholders.
type Template struct {
	name string
	tmpl *template.Template
}

// ParseTemplate parses text as a shader template. Expanding a template that
// references a missing variable fails instead of writing "<no value>".
func ParseTemplate(name, text string) (*Template, error) {
	t, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("shadersrc: parse %s: %w", name, err)
	}
	return &Template{name: name, tmpl: t}, nil
}

// LoadTemplate reads and parses the template at path.
func LoadTemplate(path string) (*Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shadersrc: %w", err)
	}
	return ParseTemplate(filepath.Base(path), string(b))
}

// Name returns the name the template was parsed with.
func (t *Template) Name() string { return t.name }

// Expand substitutes vars into the template.
func (t *Template) Expand(vars map[string]any) (string, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("shadersrc: expand %s: %w", t.name, err)
	}
	return sb.String(), nil
}
