package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/sim"
)

// Spread is the mean distance of the bodies from a centre point, averaged
// over the observed ticks. It rises on explosions and oscillates as the
// swarm settles back onto the attractor.
type Spread struct {
	name    string
	center  mgl64.Vec3
	total   float64
	last    float64
	samples int
}

func NewSpread(center mgl64.Vec3) *Spread {
	return &Spread{name: "spread", center: center}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(f *sim.Frame) {
	if len(f.Bodies) == 0 {
		return
	}
	sum := 0.0
	for i := range f.Bodies {
		sum += f.Bodies[i].Position.Sub(s.center).Len()
	}
	s.last = sum / float64(len(f.Bodies))
	s.total += s.last
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Last() float64 { return s.last }

func (s *Spread) Reset() {
	s.total = 0
	s.last = 0
	s.samples = 0
}

// Containment is the fraction of ticks on which every body sat inside the
// soft boundary.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{name: "containment", radius: radius}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(f *sim.Frame) {
	c.samples++
	for i := range f.Bodies {
		if f.Bodies[i].Position.Len() > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
