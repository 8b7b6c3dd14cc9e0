package dynamo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// UnitRadius is the radius of the sphere mesh every body is scaled from.
const UnitRadius = 1.0

// Skin selects how a body is drawn. Texture is an index into the composed
// texture set, or -1 when the body uses Color (0xRRGGBB).
type Skin struct {
	Texture int
	Color   uint32
}

// Textured reports whether the skin refers to a loaded texture.
func (s Skin) Textured() bool { return s.Texture >= 0 }

// ColorSkin returns a skin drawn with a flat colour.
func ColorSkin(rgb uint32) Skin { return Skin{Texture: -1, Color: rgb} }

// TextureSkin returns a skin drawn with texture slot idx.
func TextureSkin(idx int) Skin { return Skin{Texture: idx} }

type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles, radians
	Spin     mgl64.Vec3 // rotation velocity per tick
	Scale    float64
	Skin     Skin

	radius float64
}

// NewBody creates a body at pos with the given base scale. The collision
// radius is derived from scale here and cannot change afterwards.
func NewBody(pos mgl64.Vec3, scale float64, skin Skin) Body {
	return Body{
		Position: pos,
		Scale:    scale,
		Skin:     skin,
		radius:   scale * UnitRadius,
	}
}

func (b *Body) Radius() float64 { return b.radius }

// IsValid reports whether every vector component is finite.
func (b *Body) IsValid() bool {
	return IsFinite(b.Position) && IsFinite(b.Velocity) && IsFinite(b.Rotation) && IsFinite(b.Spin)
}

// Store owns the bodies of one scene. Its length is fixed at construction;
// render-facing code refers to bodies by index.
type Store struct {
	bodies []Body
}

func NewStore(bodies []Body) (*Store, error) {
	if len(bodies) == 0 {
		return nil, ErrBodyCount
	}
	b := make([]Body, len(bodies))
	copy(b, bodies)
	return &Store{bodies: b}, nil
}

func (s *Store) Len() int { return len(s.bodies) }

// At returns a pointer into the store. The pointer stays valid for the
// store's lifetime since the backing slice never grows.
func (s *Store) At(i int) *Body { return &s.bodies[i] }

// Bodies exposes the backing slice for index-based iteration.
func (s *Store) Bodies() []Body { return s.bodies }

// Validate returns a BodyError for the first body holding NaN or Inf.
func (s *Store) Validate() error {
	for i := range s.bodies {
		if !s.bodies[i].IsValid() {
			return &BodyError{Index: i, Wrapped: fmt.Errorf("body %d: %w", i, ErrInvalidState)}
		}
	}
	return nil
}

// SimState is the process-wide simulation state shared by the physics step,
// the interaction controller and the render driver.
type SimState struct {
	ExplosionForce float64
	Exploding      bool

	Pointer      mgl64.Vec2 // normalised device coordinates
	PointerSpeed float64
	Tilt         mgl64.Vec2 // target scene rotation (x, y)

	Paused bool
}

func NewSimState() *SimState {
	return &SimState{}
}

func (s *SimState) String() string {
	status := "running"
	if s.Paused {
		status = "paused"
	}
	return fmt.Sprintf("%s force=%.3f exploding=%t", status, s.ExplosionForce, s.Exploding)
}
