package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
)

const (
	DefaultAttraction       = 0.0005
	DefaultExplosionCut     = 0.8
	DefaultFriction         = 0.992
	DefaultMaxSpeed         = 0.15
	DefaultExplosionSpeed   = 0.5
	DefaultBoundaryRadius   = 15.0
	DefaultBoundaryPush     = 0.02
	DefaultCollisionPadding = 1.1
	DefaultSpinDamping      = 0.99
	DefaultExplosionDecay   = 0.98
	DefaultExplosionCutoff  = 0.01
)

// Params holds the constants of the physics step and of the pointer and
// explosion impulses applied by the interaction controller.
type Params struct {
	Attractor        mgl64.Vec3
	Attraction       float64
	ExplosionCut     float64 // fraction of attraction removed at full explosion force
	Friction         float64
	MaxSpeed         float64
	ExplosionSpeed   float64
	BoundaryRadius   float64
	BoundaryPush     float64
	CollisionPadding float64
	SpinDamping      float64
	ExplosionDecay   float64
	ExplosionCutoff  float64

	PointerPlane     mgl64.Vec2 // ndc to world scale on x and y
	PointerDepth     float64
	PointerRadius    float64
	PointerGain      float64
	PointerSpinKick  float64
	PointerThreshold float64
	TiltGain         float64
	TiltEase         float64

	ExplosionImpulseMin float64
	ExplosionImpulseMax float64
	ExplosionSpin       float64
}

func DefaultParams() Params {
	return Params{
		Attractor:        mgl64.Vec3{7, 0, 0},
		Attraction:       DefaultAttraction,
		ExplosionCut:     DefaultExplosionCut,
		Friction:         DefaultFriction,
		MaxSpeed:         DefaultMaxSpeed,
		ExplosionSpeed:   DefaultExplosionSpeed,
		BoundaryRadius:   DefaultBoundaryRadius,
		BoundaryPush:     DefaultBoundaryPush,
		CollisionPadding: DefaultCollisionPadding,
		SpinDamping:      DefaultSpinDamping,
		ExplosionDecay:   DefaultExplosionDecay,
		ExplosionCutoff:  DefaultExplosionCutoff,

		PointerPlane:     mgl64.Vec2{8, 5},
		PointerDepth:     2,
		PointerRadius:    5,
		PointerGain:      15,
		PointerSpinKick:  0.1,
		PointerThreshold: 0.001,
		TiltGain:         0.3,
		TiltEase:         0.05,

		ExplosionImpulseMin: 0.3,
		ExplosionImpulseMax: 0.5,
		ExplosionSpin:       0.01,
	}
}

// Validate checks that every constant keeps the step stable.
func (p Params) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"attraction", p.Attraction >= 0},
		{"explosion_cut", p.ExplosionCut >= 0 && p.ExplosionCut <= 1},
		{"friction", p.Friction > 0 && p.Friction <= 1},
		{"max_speed", p.MaxSpeed > 0},
		{"explosion_speed", p.ExplosionSpeed >= p.MaxSpeed},
		{"boundary_radius", p.BoundaryRadius > 0},
		{"boundary_push", p.BoundaryPush >= 0},
		{"collision_padding", p.CollisionPadding >= 1},
		{"spin_damping", p.SpinDamping > 0 && p.SpinDamping <= 1},
		{"explosion_decay", p.ExplosionDecay > 0 && p.ExplosionDecay < 1},
		{"explosion_cutoff", p.ExplosionCutoff > 0 && p.ExplosionCutoff < 1},
		{"pointer_radius", p.PointerRadius > 0},
		{"pointer_gain", p.PointerGain >= 0},
		{"pointer_threshold", p.PointerThreshold >= 0},
		{"tilt_ease", p.TiltEase > 0 && p.TiltEase <= 1},
		{"explosion_impulse", p.ExplosionImpulseMin > 0 && p.ExplosionImpulseMax >= p.ExplosionImpulseMin},
		{"explosion_spin", p.ExplosionSpin >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s: %w", c.name, dynamo.ErrParameterBounds)
		}
	}
	return nil
}

// SpeedLimit is the velocity clamp for the given state.
func (p Params) SpeedLimit(st *dynamo.SimState) float64 {
	if st.Exploding {
		return p.ExplosionSpeed
	}
	return p.MaxSpeed
}

// AttractionStrength is the spring constant toward the attractor for the
// given state.
func (p Params) AttractionStrength(st *dynamo.SimState) float64 {
	if st.Exploding {
		return p.Attraction * (1 - st.ExplosionForce*p.ExplosionCut)
	}
	return p.Attraction
}

// DecayBound is the maximum number of ticks a full-strength explosion takes
// to decay to zero.
func (p Params) DecayBound() int {
	return int(math.Ceil(math.Log(p.ExplosionCutoff)/math.Log(p.ExplosionDecay))) + 1
}

// GetParams returns the scalar constants that can be tuned by name.
func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"attraction":        p.Attraction,
		"explosion_cut":     p.ExplosionCut,
		"friction":          p.Friction,
		"max_speed":         p.MaxSpeed,
		"explosion_speed":   p.ExplosionSpeed,
		"boundary_radius":   p.BoundaryRadius,
		"boundary_push":     p.BoundaryPush,
		"collision_padding": p.CollisionPadding,
		"spin_damping":      p.SpinDamping,
		"explosion_decay":   p.ExplosionDecay,
		"pointer_radius":    p.PointerRadius,
		"pointer_gain":      p.PointerGain,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "attraction":
		p.Attraction = value
	case "explosion_cut":
		p.ExplosionCut = value
	case "friction":
		p.Friction = value
	case "max_speed":
		p.MaxSpeed = value
	case "explosion_speed":
		p.ExplosionSpeed = value
	case "boundary_radius":
		p.BoundaryRadius = value
	case "boundary_push":
		p.BoundaryPush = value
	case "collision_padding":
		p.CollisionPadding = value
	case "spin_damping":
		p.SpinDamping = value
	case "explosion_decay":
		p.ExplosionDecay = value
	case "pointer_radius":
		p.PointerRadius = value
	case "pointer_gain":
		p.PointerGain = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
