package physics

import (
	"github.com/san-kum/memespheres/internal/dynamo"
)

// Collide resolves every overlapping unordered pair once and returns the
// number of pairs resolved. Pairs are visited by index (i < j) so no
// allocation happens per tick.
func Collide(bodies []dynamo.Body, padding float64) int {
	n := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if ResolvePair(&bodies[i], &bodies[j], padding) {
				n++
			}
		}
	}
	return n
}

// ResolvePair separates a and b by half the overlap each along the line
// between their centres and exchanges half the normal component of their
// relative velocity. Coincident centres are left alone.
func ResolvePair(a, b *dynamo.Body, padding float64) bool {
	diff := a.Position.Sub(b.Position)
	dist := diff.Len()
	minDist := (a.Radius() + b.Radius()) * padding
	if dist >= minDist || dist <= 0 {
		return false
	}

	normal := diff.Mul(1 / dist)
	push := normal.Mul((minDist - dist) * 0.5)
	a.Position = a.Position.Add(push)
	b.Position = b.Position.Sub(push)

	rel := a.Velocity.Sub(b.Velocity)
	impulse := normal.Mul(rel.Dot(normal) * 0.5)
	a.Velocity = a.Velocity.Sub(impulse)
	b.Velocity = b.Velocity.Add(impulse)
	return true
}
