package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/sim"
)

func frame(bodies ...dynamo.Body) *sim.Frame {
	return &sim.Frame{Bodies: bodies}
}

func moving(pos, vel mgl64.Vec3, scale float64) dynamo.Body {
	b := dynamo.NewBody(pos, scale, dynamo.ColorSkin(0))
	b.Velocity = vel
	return b
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	f := frame(
		moving(mgl64.Vec3{}, mgl64.Vec3{0.1, 0, 0}, 1),
		moving(mgl64.Vec3{}, mgl64.Vec3{0, 0.2, 0}, 0.5),
	)

	m.Observe(f)
	expected := 0.5*1*0.01 + 0.5*0.125*0.04
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
	if m.Last() != m.Value() {
		t.Errorf("expected last %f to equal single-sample mean %f", m.Last(), m.Value())
	}

	m.Observe(frame(moving(mgl64.Vec3{}, mgl64.Vec3{}, 1)))
	if math.Abs(m.Value()-expected/2) > 1e-12 {
		t.Errorf("expected mean %f, got %f", expected/2, m.Value())
	}
	if m.Last() != 0 {
		t.Errorf("expected last 0, got %f", m.Last())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	m.Observe(frame(moving(mgl64.Vec3{}, mgl64.Vec3{0.3, 0.4, 0}, 1)))
	m.Observe(frame(moving(mgl64.Vec3{}, mgl64.Vec3{0.1, 0, 0}, 1)))

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected peak 0.5, got %f", m.Value())
	}
	if math.Abs(m.Last()-0.1) > 1e-12 {
		t.Errorf("expected last 0.1, got %f", m.Last())
	}
}

func TestSpread(t *testing.T) {
	center := mgl64.Vec3{7, 0, 0}
	m := NewSpread(center)
	m.Observe(frame(
		moving(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, 1),
		moving(mgl64.Vec3{7, 0, 5}, mgl64.Vec3{}, 1),
	))
	if math.Abs(m.Value()-4) > 1e-12 {
		t.Errorf("expected spread 4, got %f", m.Value())
	}

	m.Observe(frame())
	if m.Value() != 4 {
		t.Errorf("expected empty frame ignored, got %f", m.Value())
	}
}

func TestContainment(t *testing.T) {
	m := NewContainment(15)
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 before samples, got %f", m.Value())
	}

	m.Observe(frame(moving(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 1)))
	m.Observe(frame(moving(mgl64.Vec3{16, 0, 0}, mgl64.Vec3{}, 1)))
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestCollisions(t *testing.T) {
	m := NewCollisions()
	m.Observe(&sim.Frame{Stats: physics.Stats{Collisions: 3}})
	m.Observe(&sim.Frame{Stats: physics.Stats{Collisions: 2}})
	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
	if m.Last() != 2 {
		t.Errorf("expected last 2, got %f", m.Last())
	}
}

func TestStandardSamplers(t *testing.T) {
	samplers := 0
	for _, m := range Standard(mgl64.Vec3{7, 0, 0}, 15) {
		if _, ok := m.(sim.Sampler); ok {
			samplers++
		}
	}
	if samplers != 4 {
		t.Errorf("expected 4 samplers, got %d", samplers)
	}
}
