package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene.Count != 50 {
		t.Errorf("expected 50 bodies, got %d", cfg.Scene.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config valid, got %v", err)
	}
	if cfg.PhysicsParams() != physics.DefaultParams() {
		t.Error("expected default physics params")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("seed: 42\nscene:\n  count: 12\n  offline: true\nphysics:\n  max_speed: 0.2\nfetch:\n  timeout: 3s\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 42 || cfg.Scene.Count != 12 || !cfg.Scene.Offline {
		t.Errorf("expected overrides applied, got %+v", cfg.Scene)
	}
	if cfg.Physics.MaxSpeed != 0.2 {
		t.Errorf("expected max speed 0.2, got %f", cfg.Physics.MaxSpeed)
	}
	if cfg.Physics.Friction != physics.DefaultFriction {
		t.Errorf("expected default friction kept, got %f", cfg.Physics.Friction)
	}
	if cfg.Fetch.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Fetch.Timeout)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("scene: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("frenzy")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scene.Count != cfg.Scene.Count || got.Physics.MaxSpeed != cfg.Physics.MaxSpeed {
		t.Errorf("expected saved preset back, got %+v", got.Scene)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"no bodies", func(c *Config) { c.Scene.Count = 0 }},
		{"inverted shell", func(c *Config) { c.Scene.ShellMax = 1 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"friction above one", func(c *Config) { c.Physics.Friction = 1.2 }},
		{"explosion slower than rest", func(c *Config) { c.Physics.ExplosionSpeed = 0.01 }},
		{"negative pixel ratio", func(c *Config) { c.Window.PixelRatio = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestValidateAutoPixelRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.PixelRatio = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected pixel ratio 0 to mean auto, got %v", err)
	}
}

func TestImageURLs(t *testing.T) {
	cfg := DefaultConfig()
	urls, err := cfg.ImageURLs()
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 24 {
		t.Fatalf("expected 24 catalogue urls, got %d", len(urls))
	}
	u, _ := url.Parse(urls[0])
	if u.Host != "wsrv.nl" || u.Query().Get("w") != "256" {
		t.Errorf("expected proxied url, got %s", urls[0])
	}

	cfg.Scene.Images = []string{"https://example.com/a.png"}
	cfg.Fetch.Proxy = ""
	urls, _ = cfg.ImageURLs()
	if len(urls) != 1 || urls[0] != "https://example.com/a.png" {
		t.Errorf("expected custom image passthrough, got %v", urls)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene.Count != 30 {
		t.Errorf("expected 30 bodies, got %d", cfg.Scene.Count)
	}

	cfg.Scene.Count = 999
	if GetPreset("calm").Scene.Count != 30 {
		t.Error("expected preset copies to be independent")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Errorf("expected 4 presets, got %v", names)
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if !GetPreset("offline").Scene.Offline {
		t.Error("expected offline preset to skip fetching")
	}
}
