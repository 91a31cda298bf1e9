// Package config loads the viewer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Window configures the viewer window.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Renderer configures the GPU device.
type Renderer struct {
	// MSAA is the sample count, 1 or 4.
	MSAA int `toml:"msaa"`

	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`

	SoftwareRenderer bool       `toml:"software_renderer"`
	ClearColor       [4]float64 `toml:"clear_color"`
}

// Scene configures the skinned quads the viewer draws.
type Scene struct {
	// Quads is the number of quads laid out in a row.
	Quads int `toml:"quads"`

	// Textured selects the diffuse texture feature for even quads.
	Textured bool `toml:"textured"`

	// Specular selects the specular texture feature for every quad.
	Specular bool `toml:"specular"`

	TextureSize  uint32     `toml:"texture_size"`
	CheckerCell  uint32     `toml:"checker_cell"`
	Color        [3]float32 `toml:"color"`
	Opacity      float32    `toml:"opacity"`
	DiffuseColor [4]float32 `toml:"diffuse_color"`
	AmbientColor [4]float32 `toml:"ambient_color"`

	// SwaySpeed is the bone animation speed in radians per second.
	SwaySpeed float32 `toml:"sway_speed"`
}

// Config is the full viewer configuration.
type Config struct {
	Window   Window   `toml:"window"`
	Renderer Renderer `toml:"renderer"`
	Scene    Scene    `toml:"scene"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: Window{Title: "oxy-rig viewer", Width: 1280, Height: 720},
		Renderer: Renderer{
			MSAA:        4,
			PresentMode: "vsync",
			ClearColor:  [4]float64{0.1, 0.1, 0.1, 1},
		},
		Scene: Scene{
			Quads:        4,
			Textured:     true,
			TextureSize:  64,
			CheckerCell:  8,
			Color:        [3]float32{1, 1, 1},
			Opacity:      1,
			DiffuseColor: [4]float32{0.8, 0.3, 0.2, 1},
			AmbientColor: [4]float32{0.05, 0.05, 0.1, 0},
			SwaySpeed:    1.5,
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep their default.
//
// Parameters:
//   - path: the file path, or "" for defaults only
//
// Returns:
//   - Config: the validated configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML over base and validates the result.
//
// Parameters:
//   - data: the TOML document
//   - base: the values unset keys keep
//
// Returns:
//   - Config: the validated configuration
//   - error: a decode or validation error
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and joins all failures.
//
// Returns:
//   - error: nil, or the joined failures each wrapping ErrInvalidConfig
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		bad("msaa %d, want 1 or 4", c.Renderer.MSAA)
	}
	if c.Renderer.PresentMode != "vsync" && c.Renderer.PresentMode != "uncapped" {
		bad("present_mode %q", c.Renderer.PresentMode)
	}
	if c.Scene.Quads < 1 {
		bad("quads %d", c.Scene.Quads)
	}
	if c.Scene.TextureSize == 0 {
		bad("texture_size must be positive")
	}
	if c.Scene.Opacity < 0 || c.Scene.Opacity > 1 {
		bad("opacity %v outside [0, 1]", c.Scene.Opacity)
	}
	return errors.Join(errs...)
}
