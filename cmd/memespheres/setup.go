package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/memespheres/internal/config"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/interact"
	"github.com/san-kum/memespheres/internal/metrics"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/scene"
	"github.com/san-kum/memespheres/internal/sim"
	"github.com/san-kum/memespheres/internal/starfield"
	"github.com/san-kum/memespheres/internal/texture"
	"github.com/spf13/cobra"
)

// resolveConfig applies --preset, then --config, then explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Scene.Count = count
	}
	if flags.Changed("offline") {
		cfg.Scene.Offline = offline
	}
	if flags.Changed("stars") {
		cfg.Stars.Enabled = stars
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = frameRate
	}
	if flags.Changed("pixel-ratio") {
		cfg.Window.PixelRatio = pixelRatio
	}
	if flags.Changed("theme") {
		cfg.Window.Theme = theme
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout = timeout
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoader(cfg *config.Config) *texture.HTTPLoader {
	loader := texture.NewHTTPLoader(cfg.Fetch.Timeout, cfg.Fetch.Size)
	loader.Concurrency = cfg.Fetch.Concurrency
	return loader
}

func newComposer(cfg *config.Config, rng *rand.Rand, log io.Writer) *scene.Composer {
	c := scene.NewComposer(newLoader(cfg), rng)
	c.Count = cfg.Scene.Count
	c.Offline = cfg.Scene.Offline
	c.ShellMin, c.ShellMax = cfg.Scene.ShellMin, cfg.Scene.ShellMax
	c.ScaleMin, c.ScaleMax = cfg.Scene.ScaleMin, cfg.Scene.ScaleMax
	c.Log = log
	return c
}

// loadScene fetches the textures and composes the initial body set.
func loadScene(ctx context.Context, cfg *config.Config, log io.Writer) (*scene.Scene, error) {
	urls, err := cfg.ImageURLs()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return newComposer(cfg, rng, log).Compose(ctx, urls)
}

// newDriver wires a store into a driver with the standard metrics. The
// same seed drives the controller and the starfield.
func newDriver(cfg *config.Config, store *dynamo.Store, seed int64) *sim.Driver {
	return newDriverWithParams(cfg, cfg.PhysicsParams(), store, seed)
}

func newDriverWithParams(cfg *config.Config, params physics.Params, store *dynamo.Store, seed int64) *sim.Driver {
	rng := rand.New(rand.NewSource(seed))
	state := dynamo.NewSimState()

	ctrl := interact.New(store, state, params, rng)
	d := sim.New(store, state, params, ctrl)
	d.Resize(cfg.Window.Width, cfg.Window.Height)
	d.SetPixelRatio(cfg.Window.PixelRatio)

	if cfg.Stars.Enabled && cfg.Stars.Count > 0 {
		d.SetStars(starfield.New(cfg.Stars.Count, starfield.DefaultBounds(), rng))
	}
	for _, m := range metrics.Standard(params.Attractor, params.BoundaryRadius) {
		d.AddMetric(m)
	}
	return d
}

// setup resolves the config, loads the scene and builds the driver.
func setup(cmd *cobra.Command, log io.Writer) (*config.Config, *scene.Scene, *sim.Driver, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	sc, err := loadScene(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, sc, newDriver(cfg, sc.Store, cfg.Seed), nil
}

// ensembleBuilder recomposes the scene for every seed, reusing the texture
// count of an already loaded scene so nothing is fetched twice.
func ensembleBuilder(cfg *config.Config, textures int) sim.Builder {
	return func(s int64) (*sim.Driver, error) {
		rng := rand.New(rand.NewSource(s))
		store, err := newComposer(cfg, rng, io.Discard).Build(textures)
		if err != nil {
			return nil, err
		}
		return newDriver(cfg, store, s), nil
	}
}

// paramsBuilder rebuilds the scene for cfg.Seed under different physics
// constants, so sweep points differ only in those constants.
func paramsBuilder(cfg *config.Config, textures int) sim.ParamsBuilder {
	return func(p physics.Params) (*sim.Driver, error) {
		rng := rand.New(rand.NewSource(cfg.Seed))
		store, err := newComposer(cfg, rng, io.Discard).Build(textures)
		if err != nil {
			return nil, err
		}
		return newDriverWithParams(cfg, p, store, cfg.Seed), nil
	}
}

func tints(imgs []image.Image) []uint32 {
	return texture.Tints(imgs, scene.Palette[0])
}

// lastFrame keeps the most recent frame seen by the driver.
type lastFrame struct {
	frame *sim.Frame
}

func (l *lastFrame) OnTick(f *sim.Frame) { l.frame = f }

func logWriter() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stderr
}
