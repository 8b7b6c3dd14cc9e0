package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/interact"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/starfield"
)

type recordingSurface struct {
	frames        int
	width, height int
	ratio         float64
	last          Frame
}

func (s *recordingSurface) Render(f *Frame) {
	s.frames++
	s.last = *f
}
func (s *recordingSurface) Resize(w, h int)         { s.width, s.height = w, h }
func (s *recordingSurface) SetPixelRatio(r float64) { s.ratio = r }

type countMetric struct {
	n    int
	last float64
}

func (c *countMetric) Name() string     { return "count" }
func (c *countMetric) Observe(f *Frame) { c.n++; c.last = float64(f.Tick) }
func (c *countMetric) Value() float64   { return float64(c.n) }
func (c *countMetric) Reset()           { c.n = 0 }
func (c *countMetric) Last() float64    { return c.last }

func newDriver(t *testing.T, seed int64) *Driver {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]dynamo.Body, 20)
	for i := range bodies {
		pos := dynamo.RandomUnit(rng).Mul(5 + rng.Float64()*8)
		bodies[i] = dynamo.NewBody(pos, 0.3+rng.Float64()*0.7, dynamo.ColorSkin(0xef4444))
		bodies[i].Velocity = dynamo.Jitter(rng, 0.01)
		bodies[i].Spin = dynamo.Jitter(rng, 0.005)
	}
	store, err := dynamo.NewStore(bodies)
	if err != nil {
		t.Fatal(err)
	}
	st := dynamo.NewSimState()
	p := physics.DefaultParams()
	d := New(store, st, p, interact.New(store, st, p, rng))
	d.SetStars(starfield.New(50, starfield.DefaultBounds(), rng))
	return d
}

func snapshot(s *dynamo.Store) []dynamo.Body {
	out := make([]dynamo.Body, s.Len())
	copy(out, s.Bodies())
	return out
}

func TestTickRendersFrame(t *testing.T) {
	d := newDriver(t, 1)
	surf := &recordingSurface{}
	d.Resize(640, 480)
	d.Attach(surf)

	d.Tick()
	d.Tick()

	if surf.frames != 2 {
		t.Errorf("expected 2 frames, got %d", surf.frames)
	}
	if surf.width != 640 || surf.height != 480 {
		t.Errorf("expected 640x480, got %dx%d", surf.width, surf.height)
	}
	if surf.last.Tick != 1 {
		t.Errorf("expected tick 1, got %d", surf.last.Tick)
	}
	if len(surf.last.Bodies) != 20 || len(surf.last.Stars) != 50 {
		t.Errorf("expected 20 bodies and 50 stars, got %d and %d", len(surf.last.Bodies), len(surf.last.Stars))
	}
}

func TestPausedTickIsFrozen(t *testing.T) {
	d := newDriver(t, 2)
	d.Controller().Click()
	d.Tick()
	d.Controller().TogglePause()

	before := snapshot(d.Store())
	stars := make([]starfield.Star, len(d.stars.Stars))
	copy(stars, d.stars.Stars)
	force := d.State().ExplosionForce
	rot := d.Rotation()

	for i := 0; i < 10; i++ {
		d.Tick()
	}

	for i, b := range d.Store().Bodies() {
		if b.Position != before[i].Position {
			t.Errorf("body %d: position moved while paused", i)
		}
		if b.Rotation != before[i].Rotation {
			t.Errorf("body %d: rotation moved while paused", i)
		}
	}
	for i := range stars {
		if stars[i] != d.stars.Stars[i] {
			t.Fatalf("star %d moved while paused", i)
		}
	}
	if d.State().ExplosionForce != force {
		t.Errorf("expected force %f unchanged, got %f", force, d.State().ExplosionForce)
	}
	if d.Rotation() != rot {
		t.Errorf("expected rotation unchanged, got %v", d.Rotation())
	}
}

func TestRotationEasesToTilt(t *testing.T) {
	d := newDriver(t, 3)
	d.State().Tilt = mgl64.Vec2{0.3, -0.3}

	d.Tick()
	if got := d.Rotation().X(); math.Abs(got-0.3*0.05) > 1e-12 {
		t.Errorf("expected first ease step %f, got %f", 0.3*0.05, got)
	}
	for i := 0; i < 500; i++ {
		d.Tick()
	}
	if !d.Rotation().ApproxEqualThreshold(d.State().Tilt, 1e-6) {
		t.Errorf("expected rotation to converge to %v, got %v", d.State().Tilt, d.Rotation())
	}
}

func TestRunScript(t *testing.T) {
	d := newDriver(t, 4)
	m := &countMetric{}
	d.AddMetric(m)

	res, err := d.Run(context.Background(), RunConfig{
		Ticks:    300,
		Script:   []Scheduled{{At: 10, Do: Explode}},
		Validate: true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Ticks != 300 {
		t.Errorf("expected 300 ticks, got %d", res.Ticks)
	}
	if res.Metrics["count"] != 300 {
		t.Errorf("expected count 300, got %f", res.Metrics["count"])
	}
	if len(res.Series["count"]) != 300 {
		t.Errorf("expected 300 samples, got %d", len(res.Series["count"]))
	}

	force := res.Series[ForceSeries]
	if force[9] != 0 {
		t.Errorf("expected no force before the click, got %f", force[9])
	}
	if force[10] <= 0.9 {
		t.Errorf("expected force near 1 right after the click, got %f", force[10])
	}
	if force[len(force)-1] != 0 {
		t.Errorf("expected force decayed to 0, got %f", force[len(force)-1])
	}
}

func TestRunValidatesConfig(t *testing.T) {
	d := newDriver(t, 5)
	tests := []RunConfig{
		{Ticks: 0},
		{Ticks: 10, Interval: -time.Second},
		{Ticks: 10, Script: []Scheduled{{At: 10, Do: Explode}}},
	}
	for _, cfg := range tests {
		if _, err := d.Run(context.Background(), cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestRunConfigCheck(t *testing.T) {
	ok := RunConfig{Ticks: 10, Script: []Scheduled{{At: 0, Do: Explode}, {At: 9, Do: Pause}}}
	if err := ok.Check(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
	late := RunConfig{Ticks: 10, Script: []Scheduled{{At: 60, Do: Explode}}}
	if err := late.Check(); err == nil {
		t.Error("expected error for action past the last tick")
	}
}

func TestRunCancelled(t *testing.T) {
	d := newDriver(t, 6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := d.Run(ctx, RunConfig{Ticks: 100, Interval: time.Millisecond})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.Ticks != 0 {
		t.Errorf("expected empty partial result, got %+v", res)
	}
}

func TestRunReportsInvalidState(t *testing.T) {
	d := newDriver(t, 7)
	d.Store().At(3).Spin = mgl64.Vec3{math.NaN(), 0, 0}

	_, err := d.Run(context.Background(), RunConfig{Ticks: 5, Validate: true})
	var te TickError
	if !errors.As(err, &te) {
		t.Fatalf("expected TickError, got %v", err)
	}
	if te.Tick != 0 {
		t.Errorf("expected failure at tick 0, got %d", te.Tick)
	}
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestClampPixelRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-1, 1},
		{1, 1},
		{1.5, 1.5},
		{3, 2},
	}
	for _, tt := range tests {
		if got := ClampPixelRatio(tt.in); got != tt.want {
			t.Errorf("ClampPixelRatio(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}

	d := newDriver(t, 8)
	surf := &recordingSurface{}
	d.Attach(surf)
	d.SetPixelRatio(4)
	if surf.ratio != MaxPixelRatio {
		t.Errorf("expected surface ratio %f, got %f", MaxPixelRatio, surf.ratio)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(func(seed int64) (*Driver, error) {
		d := newDriver(t, seed)
		d.AddMetric(&countMetric{})
		return d, nil
	}, 4, 100)

	results, err := e.Run(context.Background(), RunConfig{Ticks: 50})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if got := Mean(results, "count"); got != 50 {
		t.Errorf("expected mean count 50, got %f", got)
	}

	_, err = NewEnsemble(func(int64) (*Driver, error) {
		return nil, dynamo.ErrBodyCount
	}, 2, 0).Run(context.Background(), RunConfig{Ticks: 1})
	if !errors.Is(err, dynamo.ErrBodyCount) {
		t.Errorf("expected builder error, got %v", err)
	}
}
