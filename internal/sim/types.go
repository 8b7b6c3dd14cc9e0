package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/interact"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/starfield"
)

// MaxPixelRatio caps the device pixel ratio handed to surfaces.
const MaxPixelRatio = 2.0

// Frame is what a surface draws for one tick. Bodies and Stars alias driver
// state and are only valid until the next tick.
type Frame struct {
	Tick     int
	Bodies   []dynamo.Body
	Stars    []starfield.Star
	Rotation mgl64.Vec2 // eased scene rotation about x and y
	Pointer  mgl64.Vec3 // pointer on the interaction plane
	State    dynamo.SimState
	Stats    physics.Stats
}

// Surface draws frames. Implementations own their own window or terminal.
type Surface interface {
	Render(f *Frame)
	Resize(width, height int)
	SetPixelRatio(ratio float64)
}

type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

// Sampler is a metric that also exposes its reading for the latest tick.
// Run records a per-tick series for every Sampler.
type Sampler interface {
	Metric
	Last() float64
}

type Observer interface {
	OnTick(f *Frame)
}

// Action is input injected into a headless run.
type Action func(c *interact.Controller)

// Scheduled runs Do just before tick At.
type Scheduled struct {
	At int
	Do Action
}

type RunConfig struct {
	Ticks    int
	Interval time.Duration // zero runs as fast as possible
	Script   []Scheduled
	Validate bool // stop on NaN or Inf body state
}

type Result struct {
	Ticks   int
	Metrics map[string]float64
	Series  map[string][]float64
}

// TickError reports a failure at a specific tick.
type TickError struct {
	Tick    int
	Wrapped error
}

func (e TickError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e TickError) Unwrap() error { return e.Wrapped }

// ClampPixelRatio maps non-positive ratios to 1 and caps the rest at
// MaxPixelRatio.
func ClampPixelRatio(r float64) float64 {
	if r <= 0 {
		return 1
	}
	if r > MaxPixelRatio {
		return MaxPixelRatio
	}
	return r
}
