// Package sim drives the scene: one Tick advances physics, the star field and
// the scene rotation, then hands the frame to the attached surface.
package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/interact"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/starfield"
)

// ForceSeries is the name of the explosion force series recorded by Run.
const ForceSeries = "explosion_force"

type Driver struct {
	store   *dynamo.Store
	state   *dynamo.SimState
	params  physics.Params
	ctrl    *interact.Controller
	stars   *starfield.Field
	surface Surface

	metrics   []Metric
	observers []Observer

	rotation   mgl64.Vec2
	pixelRatio float64
	tick       int
	frame      Frame
}

func New(store *dynamo.Store, state *dynamo.SimState, params physics.Params, ctrl *interact.Controller) *Driver {
	return &Driver{
		store:      store,
		state:      state,
		params:     params,
		ctrl:       ctrl,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		pixelRatio: 1,
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) SetStars(f *starfield.Field) { d.stars = f }

// Attach connects a surface. It is sized to the controller's viewport.
func (d *Driver) Attach(s Surface) {
	d.surface = s
	if s == nil {
		return
	}
	w, h := d.ctrl.Viewport()
	s.Resize(w, h)
	s.SetPixelRatio(d.pixelRatio)
}

func (d *Driver) Controller() *interact.Controller { return d.ctrl }
func (d *Driver) Store() *dynamo.Store             { return d.store }
func (d *Driver) State() *dynamo.SimState          { return d.state }
func (d *Driver) Params() physics.Params           { return d.params }
func (d *Driver) Rotation() mgl64.Vec2             { return d.rotation }
func (d *Driver) Ticks() int                       { return d.tick }

// Resize propagates a viewport change to the controller and surface.
func (d *Driver) Resize(width, height int) {
	d.ctrl.Resize(width, height)
	if d.surface != nil {
		d.surface.Resize(width, height)
	}
}

func (d *Driver) SetPixelRatio(r float64) {
	d.pixelRatio = ClampPixelRatio(r)
	if d.surface != nil {
		d.surface.SetPixelRatio(d.pixelRatio)
	}
}

func (d *Driver) PixelRatio() float64 { return d.pixelRatio }

// Tick advances one frame. While paused nothing moves but the frame is still
// observed and rendered.
func (d *Driver) Tick() *Frame {
	var stats physics.Stats
	if !d.state.Paused {
		stats = physics.Step(d.store, d.state, d.params)
		if d.stars != nil {
			d.stars.Update()
		}
		ease := d.params.TiltEase
		d.rotation = d.rotation.Add(d.state.Tilt.Sub(d.rotation).Mul(ease))
	}

	d.frame = Frame{
		Tick:     d.tick,
		Bodies:   d.store.Bodies(),
		Rotation: d.rotation,
		Pointer:  d.ctrl.PointerWorld(),
		State:    *d.state,
		Stats:    stats,
	}
	if d.stars != nil {
		d.frame.Stars = d.stars.Stars
	}
	d.tick++

	for _, m := range d.metrics {
		m.Observe(&d.frame)
	}
	for _, o := range d.observers {
		o.OnTick(&d.frame)
	}
	if d.surface != nil {
		d.surface.Render(&d.frame)
	}
	return &d.frame
}

// Check reports whether cfg can be run: a positive tick count, a
// non-negative interval and every scripted action inside [0, Ticks).
func (cfg RunConfig) Check() error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", cfg.Interval)
	}
	for _, s := range cfg.Script {
		if s.At < 0 || s.At >= cfg.Ticks {
			return fmt.Errorf("scheduled action at tick %d outside [0, %d)", s.At, cfg.Ticks)
		}
	}
	return nil
}

// Run ticks the driver cfg.Ticks times, applying scripted input, and
// collects metric values and per-tick series. On cancellation the partial
// result is returned with ctx.Err().
func (d *Driver) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	script := make([]Scheduled, len(cfg.Script))
	copy(script, cfg.Script)
	sort.SliceStable(script, func(i, j int) bool { return script[i].At < script[j].At })

	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}
	result.Series[ForceSeries] = make([]float64, 0, cfg.Ticks)

	for _, m := range d.metrics {
		m.Reset()
	}

	var ticker *time.Ticker
	if cfg.Interval > 0 {
		ticker = time.NewTicker(cfg.Interval)
		defer ticker.Stop()
	}

	next := 0
	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				runErr = ctx.Err()
			case <-ticker.C:
			}
			if runErr != nil {
				break
			}
		}

		for next < len(script) && script[next].At == i {
			script[next].Do(d.ctrl)
			next++
		}

		f := d.Tick()
		result.Ticks++
		result.Series[ForceSeries] = append(result.Series[ForceSeries], f.State.ExplosionForce)
		for _, m := range d.metrics {
			if s, ok := m.(Sampler); ok {
				result.Series[m.Name()] = append(result.Series[m.Name()], s.Last())
			}
		}

		if cfg.Validate {
			if err := d.store.Validate(); err != nil {
				runErr = TickError{Tick: i, Wrapped: err}
				break
			}
		}
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

// Explode is a scripted click.
func Explode(c *interact.Controller) { c.Click() }

// Pause is a scripted pause toggle.
func Pause(c *interact.Controller) { c.TogglePause() }

// MoveTo returns a scripted pointer move to pixel (x, y).
func MoveTo(x, y float64) Action {
	return func(c *interact.Controller) { c.PointerMove(x, y) }
}
