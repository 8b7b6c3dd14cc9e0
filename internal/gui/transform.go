package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/sim"
)

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// color converts 0xRRGGBB to an opaque raylib colour.
func color(rgb uint32) rl.Color {
	return rl.GetColor(uint(rgb&0xffffff)<<8 | 0xff)
}

// sceneMatrix is the eased whole-scene tilt.
func sceneMatrix(f *sim.Frame) rl.Matrix {
	return rl.MatrixRotateXYZ(rl.NewVector3(float32(f.Rotation.X()), float32(f.Rotation.Y()), 0))
}

// bodyMatrix scales the unit sphere to the body, spins it in place, moves it
// to its position and finally applies the scene tilt.
func bodyMatrix(b *dynamo.Body, scene rl.Matrix) rl.Matrix {
	s := float32(b.Radius())
	m := rl.MatrixMultiply(rl.MatrixScale(s, s, s), rl.MatrixRotateXYZ(vec(b.Rotation)))
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(float32(b.Position.X()), float32(b.Position.Y()), float32(b.Position.Z())))
	return rl.MatrixMultiply(m, scene)
}
