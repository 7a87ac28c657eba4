package glkit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-theft-auto/glkit/vertex"
)

// Config is the application configuration, usually loaded from a TOML file:
//
//	verbose = true
//
//	[window]
//	title = "sprites"
//	width = 1280
//	height = 720
//
//	[gl]
//	major = 4
//	minor = 1
//
//	[shaders]
//	dir = "shaders"
//
//	[[layouts.sprite.override]]
//	index = 2
//	type = "half"
type Config struct {
	Verbose bool                         `toml:"verbose"`
	Window  WindowConfig                 `toml:"window"`
	GL      GLConfig                     `toml:"gl"`
	Shaders ShaderConfig                 `toml:"shaders"`
	Layouts map[string]vertex.LayoutSpec `toml:"layouts"`
}

// WindowConfig describes the GLFW window.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
	Samples   int    `toml:"samples"`
	Hidden    bool   `toml:"hidden"`
}

// GLConfig selects the requested OpenGL core profile version.
type GLConfig struct {
	Major int  `toml:"major"`
	Minor int  `toml:"minor"`
	Debug bool `toml:"debug"`
}

// ShaderConfig locates shader sources on disk.
type ShaderConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns the configuration used for keys a file leaves unset.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "glkit",
			Width:     1280,
			Height:    720,
			VSync:     true,
			Resizable: true,
		},
		GL: GLConfig{Major: 4, Minor: 1},
	}
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, len(strict.Errors))
			for i, e := range strict.Errors {
				keys[i] = strings.Join(e.Key(), ".")
			}
			return Config{}, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the file at path. Relative shader directories
// are resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Shaders.Dir != "" && !filepath.IsAbs(cfg.Shaders.Dir) {
		cfg.Shaders.Dir = filepath.Join(filepath.Dir(path), cfg.Shaders.Dir)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("config: window samples %d is negative", c.Window.Samples)
	}
	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 3) {
		return fmt.Errorf("config: OpenGL %d.%d is below the 3.3 core minimum", c.GL.Major, c.GL.Minor)
	}
	return nil
}

// Layout returns the named layout spec. A missing name yields an empty spec.
func (c Config) Layout(name string) (vertex.LayoutSpec, bool) {
	s, ok := c.Layouts[name]
	return s, ok
}

// ShaderPath joins name onto the shader directory.
func (c Config) ShaderPath(name string) string {
	if c.Shaders.Dir == "" {
		return name
	}
	return filepath.Join(c.Shaders.Dir, name)
}
