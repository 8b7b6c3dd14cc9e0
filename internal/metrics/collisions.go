package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/sim"
)

// Collisions counts resolved overlapping pairs over the run.
type Collisions struct {
	name  string
	total int
	last  int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(f *sim.Frame) {
	c.last = f.Stats.Collisions
	c.total += c.last
}

func (c *Collisions) Value() float64 { return float64(c.total) }
func (c *Collisions) Last() float64  { return float64(c.last) }

func (c *Collisions) Reset() {
	c.total = 0
	c.last = 0
}

// Standard returns the metric set used by the trace and tui commands.
func Standard(center mgl64.Vec3, boundary float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPeakSpeed(),
		NewSpread(center),
		NewContainment(boundary),
		NewCollisions(),
	}
}
