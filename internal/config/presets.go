package config

import "sort"

func preset(mod func(c *Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.Scene.Count = 30
		c.Physics.Attraction = 0.0003
		c.Physics.MaxSpeed = 0.1
		c.Physics.PointerGain = 8
		c.Stars.Count = 250
	}),
	"frenzy": preset(func(c *Config) {
		c.Scene.Count = 80
		c.Physics.Attraction = 0.001
		c.Physics.Friction = 0.995
		c.Physics.MaxSpeed = 0.25
		c.Physics.ExplosionSpeed = 0.8
		c.Physics.PointerGain = 25
		c.Stars.Count = 1000
	}),
	"offline": preset(func(c *Config) {
		c.Scene.Offline = true
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
