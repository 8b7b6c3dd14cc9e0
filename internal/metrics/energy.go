package metrics

import (
	"math"

	"github.com/san-kum/memespheres/internal/sim"
)

// Mass treats each body as a uniform sphere of unit density, so mass scales
// with the cube of its scale.
func Mass(scale float64) float64 { return scale * scale * scale }

// KineticEnergy is the total kinetic energy of the swarm, averaged over the
// observed ticks.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f *sim.Frame) {
	k.last = Kinetic(f)
	k.total += k.last
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.last = 0
	k.samples = 0
}

// Kinetic returns sum(0.5 m v^2) over the frame's bodies.
func Kinetic(f *sim.Frame) float64 {
	e := 0.0
	for i := range f.Bodies {
		b := &f.Bodies[i]
		v := b.Velocity.Len()
		e += 0.5 * Mass(b.Scale) * v * v
	}
	return e
}

// PeakSpeed tracks the fastest body seen over the run.
type PeakSpeed struct {
	name string
	max  float64
	last float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f *sim.Frame) {
	p.last = 0
	for i := range f.Bodies {
		p.last = math.Max(p.last, f.Bodies[i].Velocity.Len())
	}
	p.max = math.Max(p.max, p.last)
}

func (p *PeakSpeed) Value() float64 { return p.max }
func (p *PeakSpeed) Last() float64  { return p.last }

func (p *PeakSpeed) Reset() {
	p.max = 0
	p.last = 0
}
