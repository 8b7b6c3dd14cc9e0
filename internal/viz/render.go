package viz

import (
	"sort"

	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/sim"
)

// Painter projects frames onto a canvas. It keeps its sort buffer between
// frames.
type Painter struct {
	Camera *Camera
	Tints  []uint32 // flat colour per texture slot

	order []drawn
}

type drawn struct {
	index int
	proj  Projection
}

func NewPainter(cam *Camera, tints []uint32) *Painter {
	return &Painter{Camera: cam, Tints: tints}
}

// Color returns the flat colour a body is drawn with.
func (p *Painter) Color(s dynamo.Skin) uint32 {
	if s.Textured() && s.Texture < len(p.Tints) {
		return p.Tints[s.Texture]
	}
	if s.Textured() {
		return 0xffffff
	}
	return s.Color
}

// Paint clears c and draws stars then bodies far to near.
func (p *Painter) Paint(c *Canvas, f *sim.Frame) {
	c.Clear()
	w, h := c.Pixels()
	if w == 0 || h == 0 {
		return
	}
	proj := p.Camera.Projector(f.Rotation, w, h)

	for i := range f.Stars {
		s := &f.Stars[i]
		if pr := proj.Project(s.Position); pr.Visible {
			c.Set(int(pr.X), int(pr.Y), s.Color)
		}
	}

	p.order = p.order[:0]
	for i := range f.Bodies {
		if pr := proj.Project(f.Bodies[i].Position); pr.Visible {
			p.order = append(p.order, drawn{index: i, proj: pr})
		}
	}
	sort.Slice(p.order, func(a, b int) bool { return p.order[a].proj.Depth > p.order[b].proj.Depth })

	for _, d := range p.order {
		b := &f.Bodies[d.index]
		c.FillCircle(d.proj.X, d.proj.Y, b.Radius()*d.proj.PixelsPerUnit, p.Color(b.Skin))
	}
}
