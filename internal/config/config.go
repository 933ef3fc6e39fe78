package config

import (
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/plexus/internal/field"
)

const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultDensity    = 8
	DefaultMinSpeed   = 0.2
	DefaultMaxSpeed   = 1.2
	DefaultDotRadius  = 2.5
	DefaultLineWidth  = 1.0
	DefaultThreshold  = 80.0
	DefaultStrength   = 3.0
	DefaultMaxLine    = 120.0
	DefaultDt         = 1.0
	DefaultDotColor   = "#e8e8f0"
	DefaultLineColor  = "#3a4a6b"
	DefaultBackground = "#0a0a0c"
)

// Config is the flat parameter set for one field, as read from flags
// or a YAML file. Colors are hex strings; FieldOptions parses them.
type Config struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Density       int     `yaml:"density"`
	MinSpeed      float64 `yaml:"min_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	DotRadius     float64 `yaml:"dot_radius"`
	DotColor      string  `yaml:"dot_color"`
	LineColor     string  `yaml:"line_color"`
	LineWidth     float64 `yaml:"line_width"`
	Threshold     float64 `yaml:"threshold"`
	Strength      float64 `yaml:"strength"`
	MaxLineLength float64 `yaml:"max_line_length"`
	Turbulence    float64 `yaml:"turbulence"`
	Background    string  `yaml:"background"`
	Dt            float64 `yaml:"dt"`
	Seed          int64   `yaml:"seed"`
}

func Default() *Config {
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Density:       DefaultDensity,
		MinSpeed:      DefaultMinSpeed,
		MaxSpeed:      DefaultMaxSpeed,
		DotRadius:     DefaultDotRadius,
		DotColor:      DefaultDotColor,
		LineColor:     DefaultLineColor,
		LineWidth:     DefaultLineWidth,
		Threshold:     DefaultThreshold,
		Strength:      DefaultStrength,
		MaxLineLength: DefaultMaxLine,
		Background:    DefaultBackground,
		Dt:            DefaultDt,
	}
}

// Load reads a YAML file over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the physics treats as undefined:
// non-positive viewports and negative speed ranges, plus unparseable
// colors.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.MinSpeed < 0 || c.MaxSpeed < 0 {
		return fmt.Errorf("speeds must be non-negative, got [%g, %g]", c.MinSpeed, c.MaxSpeed)
	}
	if c.MaxSpeed < c.MinSpeed {
		return fmt.Errorf("max_speed %g below min_speed %g", c.MaxSpeed, c.MinSpeed)
	}
	if c.Density < 0 {
		return fmt.Errorf("density must be non-negative, got %d", c.Density)
	}
	if c.DotRadius < 0 || c.LineWidth < 0 || c.MaxLineLength < 0 {
		return fmt.Errorf("dot_radius, line_width and max_line_length must be non-negative")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	for _, hex := range []string{c.DotColor, c.LineColor, c.Background} {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// Bounds is the viewport rectangle described by the config.
func (c *Config) Bounds() field.Bounds {
	return field.Bounds{Width: c.Width, Height: c.Height}
}

// FieldOptions converts the config into field options, parsing the
// hex colors.
func (c *Config) FieldOptions() (field.Options, error) {
	dot, err := ParseColor(c.DotColor)
	if err != nil {
		return field.Options{}, err
	}
	line, err := ParseColor(c.LineColor)
	if err != nil {
		return field.Options{}, err
	}
	return field.Options{
		Density:       c.Density,
		MinSpeed:      c.MinSpeed,
		MaxSpeed:      c.MaxSpeed,
		DotRadius:     c.DotRadius,
		DotColor:      dot,
		LineColor:     line,
		LineWidth:     c.LineWidth,
		Threshold:     c.Threshold,
		Strength:      c.Strength,
		MaxLineLength: c.MaxLineLength,
		Turbulence:    c.Turbulence,
	}, nil
}

// ParseColor parses a #rrggbb hex string into an opaque RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	cf, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
