package config

// Presets are named looks for the field. Each starts from Default and
// overrides the distinguishing parameters.
var presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Density = 16
		c.MaxLineLength = 90
		c.DotRadius = 2.0
	},
	"sparse": func(c *Config) {
		c.Density = 3
		c.MaxLineLength = 180
		c.DotRadius = 3.5
	},
	"storm": func(c *Config) {
		c.MinSpeed = 1.5
		c.MaxSpeed = 4.0
		c.Strength = 6.0
		c.LineColor = "#6b3a3a"
	},
	"drift": func(c *Config) {
		c.MinSpeed = 0.05
		c.MaxSpeed = 0.4
		c.Turbulence = 0.02
		c.LineColor = "#2e4a3a"
	},
	"dots": func(c *Config) {
		c.Density = 24
		c.MaxLineLength = 0
		c.DotRadius = 1.8
	},
}

// GetPreset returns a fresh config for the named preset, or nil when
// the name is unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := Default()
	fn(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
