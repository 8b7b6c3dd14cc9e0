// Package interact turns pointer, click and keyboard input into impulses on
// the body store. It never touches a rendering surface.
package interact

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/physics"
)

type Controller struct {
	store  *dynamo.Store
	state  *dynamo.SimState
	params physics.Params
	rng    *rand.Rand

	width, height float64
	entered       bool
}

func New(store *dynamo.Store, state *dynamo.SimState, params physics.Params, rng *rand.Rand) *Controller {
	return &Controller{
		store:  store,
		state:  state,
		params: params,
		rng:    rng,
		width:  1,
		height: 1,
	}
}

// Resize records the viewport size in pixels. Non-positive sizes are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = float64(width), float64(height)
}

func (c *Controller) Viewport() (int, int) { return int(c.width), int(c.height) }

// NDC maps pixel coordinates to normalised device coordinates, y up.
func (c *Controller) NDC(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{
		x/c.width*2 - 1,
		-(y/c.height)*2 + 1,
	}
}

// PointerMove handles a pointer move to pixel (x, y). It updates the tilt
// target and, when the pointer moved fast enough, pushes nearby bodies away
// from the pointer's position on the interaction plane. It returns the
// number of bodies pushed.
func (c *Controller) PointerMove(x, y float64) int {
	prev := c.state.Pointer
	ndc := c.NDC(x, y)

	c.state.Pointer = ndc
	c.state.Tilt = mgl64.Vec2{ndc.Y() * c.params.TiltGain, ndc.X() * c.params.TiltGain}
	c.state.PointerSpeed = ndc.Sub(prev).Len()

	if c.state.PointerSpeed <= c.params.PointerThreshold {
		return 0
	}
	return c.repel(c.PointerWorld(), c.state.PointerSpeed)
}

// PointerWorld maps the current pointer onto the fixed interaction plane,
// offset horizontally to line up with the attractor.
func (c *Controller) PointerWorld() mgl64.Vec3 {
	p := c.state.Pointer
	return mgl64.Vec3{
		p.X()*c.params.PointerPlane.X() + c.params.Attractor.X(),
		p.Y() * c.params.PointerPlane.Y(),
		c.params.PointerDepth,
	}
}

func (c *Controller) repel(origin mgl64.Vec3, speed float64) int {
	radius := c.params.PointerRadius
	pushed := 0
	for i := range c.store.Bodies() {
		b := c.store.At(i)
		away := b.Position.Sub(origin)
		dist := away.Len()
		if dist >= radius {
			continue
		}

		force := (1 - dist/radius) * speed * c.params.PointerGain
		b.Velocity = b.Velocity.Add(dynamo.Direction(away, c.rng).Mul(force))

		kick := force * c.params.PointerSpinKick
		b.Spin[0] += (c.rng.Float64() - 0.5) * kick
		b.Spin[1] += (c.rng.Float64() - 0.5) * kick
		pushed++
	}
	return pushed
}

// Click sets off a full-strength explosion.
func (c *Controller) Click() {
	c.Explode()
}

// PointerEnter triggers the reveal explosion the first time the pointer
// enters the surface. It reports whether it fired.
func (c *Controller) PointerEnter() bool {
	if c.entered {
		return false
	}
	c.entered = true
	c.Explode()
	return true
}

// Explode sets the explosion force to one and throws every body outward from
// the attractor with a fresh random spin.
func (c *Controller) Explode() {
	c.state.ExplosionForce = 1
	c.state.Exploding = true

	lo, hi := c.params.ExplosionImpulseMin, c.params.ExplosionImpulseMax
	for i := range c.store.Bodies() {
		b := c.store.At(i)
		dir := dynamo.Direction(b.Position.Sub(c.params.Attractor), c.rng)
		b.Velocity = b.Velocity.Add(dir.Mul(lo + c.rng.Float64()*(hi-lo)))
		b.Spin = dynamo.Jitter(c.rng, c.params.ExplosionSpin)
	}
}

// TogglePause flips the paused flag and returns the new value.
func (c *Controller) TogglePause() bool {
	c.state.Paused = !c.state.Paused
	return c.state.Paused
}

func (c *Controller) State() *dynamo.SimState { return c.state }
