package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/scene"
	"github.com/san-kum/memespheres/internal/starfield"
	"github.com/san-kum/memespheres/internal/texture"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultTheme  = "landing"
)

type Config struct {
	Seed    int64         `yaml:"seed"` // 0 seeds from the clock
	Scene   SceneConfig   `yaml:"scene"`
	Physics PhysicsConfig `yaml:"physics"`
	Stars   StarsConfig   `yaml:"stars"`
	Window  WindowConfig  `yaml:"window"`
	Fetch   FetchConfig   `yaml:"fetch"`
}

type SceneConfig struct {
	Count    int      `yaml:"count"`
	Offline  bool     `yaml:"offline"`
	Images   []string `yaml:"images,omitempty"` // empty uses the built-in catalogue
	ShellMin float64  `yaml:"shell_min"`
	ShellMax float64  `yaml:"shell_max"`
	ScaleMin float64  `yaml:"scale_min"`
	ScaleMax float64  `yaml:"scale_max"`
}

type PhysicsConfig struct {
	Attraction       float64 `yaml:"attraction"`
	Friction         float64 `yaml:"friction"`
	MaxSpeed         float64 `yaml:"max_speed"`
	ExplosionSpeed   float64 `yaml:"explosion_speed"`
	BoundaryRadius   float64 `yaml:"boundary_radius"`
	BoundaryPush     float64 `yaml:"boundary_push"`
	CollisionPadding float64 `yaml:"collision_padding"`
	SpinDamping      float64 `yaml:"spin_damping"`
	ExplosionDecay   float64 `yaml:"explosion_decay"`
	PointerRadius    float64 `yaml:"pointer_radius"`
	PointerGain      float64 `yaml:"pointer_gain"`
}

type StarsConfig struct {
	Enabled bool `yaml:"enabled"`
	Count   int  `yaml:"count"`
}

type WindowConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	PixelRatio float64 `yaml:"pixel_ratio"` // 0 asks the monitor
	Theme      string  `yaml:"theme"`
}

type FetchConfig struct {
	Proxy       string        `yaml:"proxy"`
	Size        int           `yaml:"size"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

func DefaultConfig() *Config {
	p := physics.DefaultParams()
	return &Config{
		Scene: SceneConfig{
			Count:    scene.DefaultCount,
			ShellMin: 5,
			ShellMax: 13,
			ScaleMin: 0.3,
			ScaleMax: 1.0,
		},
		Physics: PhysicsConfig{
			Attraction:       p.Attraction,
			Friction:         p.Friction,
			MaxSpeed:         p.MaxSpeed,
			ExplosionSpeed:   p.ExplosionSpeed,
			BoundaryRadius:   p.BoundaryRadius,
			BoundaryPush:     p.BoundaryPush,
			CollisionPadding: p.CollisionPadding,
			SpinDamping:      p.SpinDamping,
			ExplosionDecay:   p.ExplosionDecay,
			PointerRadius:    p.PointerRadius,
			PointerGain:      p.PointerGain,
		},
		Stars: StarsConfig{
			Enabled: true,
			Count:   starfield.DefaultCount,
		},
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			FPS:        DefaultFPS,
			PixelRatio: 1,
			Theme:      DefaultTheme,
		},
		Fetch: FetchConfig{
			Proxy:       texture.DefaultProxy,
			Size:        texture.DefaultSize,
			Timeout:     texture.DefaultTimeout,
			Concurrency: texture.DefaultConcurrency,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// PhysicsParams overlays the configured constants on the defaults.
func (c *Config) PhysicsParams() physics.Params {
	p := physics.DefaultParams()
	p.Attraction = c.Physics.Attraction
	p.Friction = c.Physics.Friction
	p.MaxSpeed = c.Physics.MaxSpeed
	p.ExplosionSpeed = c.Physics.ExplosionSpeed
	p.BoundaryRadius = c.Physics.BoundaryRadius
	p.BoundaryPush = c.Physics.BoundaryPush
	p.CollisionPadding = c.Physics.CollisionPadding
	p.SpinDamping = c.Physics.SpinDamping
	p.ExplosionDecay = c.Physics.ExplosionDecay
	p.PointerRadius = c.Physics.PointerRadius
	p.PointerGain = c.Physics.PointerGain
	return p
}

// ImageURLs returns the proxied URLs to fetch textures from.
func (c *Config) ImageURLs() ([]string, error) {
	srcs := c.Scene.Images
	if len(srcs) == 0 {
		srcs = scene.CatalogueURLs()
	}
	return texture.ProxyAll(c.Fetch.Proxy, srcs, c.Fetch.Size)
}

func (c *Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"scene.count", c.Scene.Count > 0},
		{"scene.shell", c.Scene.ShellMin >= 0 && c.Scene.ShellMax > c.Scene.ShellMin},
		{"scene.scale", c.Scene.ScaleMin > 0 && c.Scene.ScaleMax > c.Scene.ScaleMin},
		{"stars.count", c.Stars.Count >= 0},
		{"window.size", c.Window.Width > 0 && c.Window.Height > 0},
		{"window.fps", c.Window.FPS > 0},
		{"window.pixel_ratio", c.Window.PixelRatio >= 0},
		{"fetch.size", c.Fetch.Size >= 0},
		{"fetch.concurrency", c.Fetch.Concurrency > 0},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("config: %s: %w", ch.name, dynamo.ErrParameterBounds)
		}
	}
	if err := c.PhysicsParams().Validate(); err != nil {
		return fmt.Errorf("config: physics.%w", err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Scene.Images = append([]string(nil), c.Scene.Images...)
	return &cp
}
