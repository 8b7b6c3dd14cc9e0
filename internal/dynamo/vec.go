package dynamo

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateLen is the length below which a direction is treated as undefined.
const degenerateLen = 1e-9

func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// RandomUnit returns a uniformly distributed unit vector.
func RandomUnit(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if l := v.Len(); l > degenerateLen {
			return v.Mul(1 / l)
		}
	}
}

// Direction returns v normalised, or a random unit vector when v has no
// usable direction.
func Direction(v mgl64.Vec3, rng *rand.Rand) mgl64.Vec3 {
	l := v.Len()
	if l <= degenerateLen {
		return RandomUnit(rng)
	}
	return v.Mul(1 / l)
}

// ClampLength rescales v to max when it is longer, keeping its direction.
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if l := v.Len(); l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// Jitter returns a vector with each component uniform in [-amp, amp).
func Jitter(rng *rand.Rand, amp float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(rng.Float64()*2 - 1) * amp,
		(rng.Float64()*2 - 1) * amp,
		(rng.Float64()*2 - 1) * amp,
	}
}
