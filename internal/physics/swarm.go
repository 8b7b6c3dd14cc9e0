package physics

import (
	"github.com/san-kum/memespheres/internal/dynamo"
)

// Stats summarises one tick.
type Stats struct {
	Collisions  int
	OutOfBounds int
	SpeedLimit  float64
}

// Step advances every body by one frame and decays the explosion.
func Step(s *dynamo.Store, st *dynamo.SimState, p Params) Stats {
	bodies := s.Bodies()
	limit := p.SpeedLimit(st)
	strength := p.AttractionStrength(st)
	stats := Stats{SpeedLimit: limit}

	for i := range bodies {
		b := &bodies[i]

		b.Velocity = b.Velocity.Add(p.Attractor.Sub(b.Position).Mul(strength))
		b.Velocity = b.Velocity.Mul(p.Friction)
		b.Velocity = dynamo.ClampLength(b.Velocity, limit)
		b.Position = b.Position.Add(b.Velocity)

		if d := b.Position.Len(); d > p.BoundaryRadius {
			b.Velocity = b.Velocity.Sub(b.Position.Mul(p.BoundaryPush / d))
			stats.OutOfBounds++
		}
	}

	stats.Collisions = Collide(bodies, p.CollisionPadding)

	for i := range bodies {
		b := &bodies[i]
		b.Rotation = b.Rotation.Add(b.Spin)
		b.Spin = b.Spin.Mul(p.SpinDamping)
		b.Velocity = dynamo.ClampLength(b.Velocity, limit)
	}

	DecayExplosion(st, p)
	return stats
}

// DecayExplosion applies one tick of geometric decay, snapping the force to
// zero and clearing the exploding flag below the cutoff.
func DecayExplosion(st *dynamo.SimState, p Params) {
	if st.ExplosionForce <= 0 {
		st.ExplosionForce = 0
		st.Exploding = false
		return
	}
	st.ExplosionForce *= p.ExplosionDecay
	if st.ExplosionForce < p.ExplosionCutoff {
		st.ExplosionForce = 0
		st.Exploding = false
	}
}
