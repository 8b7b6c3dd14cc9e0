// Package starfield animates the background points that drift toward the
// camera behind the spheres.
package starfield

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultCount = 500

	White = 0xffffff
	Blue  = 0x3b82f6
	Teal  = 0x14b8a6
)

type Star struct {
	Position mgl64.Vec3
	Speed    float64
	Color    uint32
}

// Bounds is the box stars spawn in. Stars move along +z and respawn at Far
// once they pass Recycle.
type Bounds struct {
	HalfWidth  float64
	HalfHeight float64
	Near       float64 // initial spawn depth nearest the camera
	Far        float64
	Recycle    float64
	MinSpeed   float64
	MaxSpeed   float64
}

func DefaultBounds() Bounds {
	return Bounds{
		HalfWidth:  30,
		HalfHeight: 20,
		Near:       -30,
		Far:        -100,
		Recycle:    20,
		MinSpeed:   0.05,
		MaxSpeed:   0.2,
	}
}

type Field struct {
	Stars  []Star
	Bounds Bounds
	rng    *rand.Rand
}

func New(n int, b Bounds, rng *rand.Rand) *Field {
	f := &Field{
		Stars:  make([]Star, n),
		Bounds: b,
		rng:    rng,
	}
	for i := range f.Stars {
		s := &f.Stars[i]
		s.Position = mgl64.Vec3{
			f.spread(b.HalfWidth),
			f.spread(b.HalfHeight),
			b.Near - rng.Float64()*(b.Near-b.Far),
		}
		s.Speed = f.speed()
		s.Color = pickColor(rng.Float64())
	}
	return f
}

// Update advances every star one tick and returns how many were recycled.
func (f *Field) Update() int {
	recycled := 0
	b := f.Bounds
	for i := range f.Stars {
		s := &f.Stars[i]
		s.Position[2] += s.Speed
		if s.Position[2] <= b.Recycle {
			continue
		}
		s.Position = mgl64.Vec3{f.spread(b.HalfWidth), f.spread(b.HalfHeight), b.Far}
		s.Speed = f.speed()
		recycled++
	}
	return recycled
}

func (f *Field) Len() int { return len(f.Stars) }

func (f *Field) spread(half float64) float64 {
	return (f.rng.Float64()*2 - 1) * half
}

func (f *Field) speed() float64 {
	return f.Bounds.MinSpeed + f.rng.Float64()*(f.Bounds.MaxSpeed-f.Bounds.MinSpeed)
}

// pickColor maps u in [0,1) to 80% white, 15% blue, 5% teal.
func pickColor(u float64) uint32 {
	switch {
	case u < 0.8:
		return White
	case u < 0.95:
		return Blue
	default:
		return Teal
	}
}
