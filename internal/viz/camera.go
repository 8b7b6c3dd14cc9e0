package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking down -z, matching the browser
// scene's 50 degree lens at z=15.
type Camera struct {
	Eye, Target, Up mgl64.Vec3
	FOV             float64 // vertical, degrees
	Near, Far       float64
}

func NewCamera() *Camera {
	return &Camera{
		Eye:  mgl64.Vec3{0, 0, 15},
		Up:   mgl64.Vec3{0, 1, 0},
		FOV:  50,
		Near: 0.1,
		Far:  1000,
	}
}

// Projection is a world point mapped to viewport pixels, y down.
type Projection struct {
	X, Y          float64
	Depth         float64 // distance in front of the camera
	PixelsPerUnit float64 // screen size of one world unit at Depth
	Visible       bool    // in front of the near plane
}

// sceneRotation returns the scene rotation matrix, x then y like a three.js Euler.
func sceneRotation(rot mgl64.Vec2) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(rot.X()).Mul4(mgl64.HomogRotate3DY(rot.Y()))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Perspective(width, height int) mgl64.Mat4 {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projector caches the matrices for one frame.
type Projector struct {
	modelView     mgl64.Mat4
	projection    mgl64.Mat4
	width, height int
	focal         float64
	near          float64
}

func (c *Camera) Projector(rot mgl64.Vec2, width, height int) *Projector {
	return &Projector{
		modelView:  c.View().Mul4(sceneRotation(rot)),
		projection: c.Perspective(width, height),
		width:      width,
		height:     height,
		focal:      float64(height) / 2 / math.Tan(mgl64.DegToRad(c.FOV)/2),
		near:       c.Near,
	}
}

func (p *Projector) Project(world mgl64.Vec3) Projection {
	eye := p.modelView.Mul4x1(world.Vec4(1))
	depth := -eye.Z()
	if depth <= p.near {
		return Projection{Depth: depth}
	}
	win := mgl64.Project(world, p.modelView, p.projection, 0, 0, p.width, p.height)
	return Projection{
		X:             win.X(),
		Y:             float64(p.height) - win.Y(),
		Depth:         depth,
		PixelsPerUnit: p.focal / depth,
		Visible:       true,
	}
}
