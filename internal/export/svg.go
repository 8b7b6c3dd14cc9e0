package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/memespheres/internal/sim"
	"github.com/san-kum/memespheres/internal/viz"
)

const background = "#0a0a0a"

// FrameToSVG draws a frame as seen from cam: stars as dots, bodies as
// shaded discs painted far to near. Colours come from the painter.
func FrameToSVG(w io.Writer, f *sim.Frame, cam *viz.Camera, painter *viz.Painter, width, height int) error {
	proj := cam.Projector(f.Rotation, width, height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<defs><radialGradient id="shade" cx="35%%" cy="35%%" r="65%%">
<stop offset="0%%" stop-color="#ffffff" stop-opacity="0.35"/>
<stop offset="100%%" stop-color="#000000" stop-opacity="0.45"/>
</radialGradient></defs>
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	sb.WriteString("<g id=\"stars\">\n")
	for i := range f.Stars {
		s := &f.Stars[i]
		p := proj.Project(s.Position)
		if !p.Visible || !inside(p, width, height, 1) {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="0.8"/>
`, p.X, p.Y, 0.08*p.PixelsPerUnit, string(viz.Hex(s.Color)))
	}
	sb.WriteString("</g>\n<g id=\"bodies\">\n")

	order := sortByDepth(f, proj)
	for _, i := range order {
		b := &f.Bodies[i]
		p := proj.Project(b.Position)
		r := b.Radius() * p.PixelsPerUnit
		if !inside(p, width, height, r) {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#shade)"/>
`, p.X, p.Y, r, string(viz.Hex(painter.Color(b.Skin))), p.X, p.Y, r)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func inside(p viz.Projection, width, height int, margin float64) bool {
	return p.X+margin >= 0 && p.Y+margin >= 0 &&
		p.X-margin <= float64(width) && p.Y-margin <= float64(height)
}

// sortByDepth returns the indices of visible bodies, farthest first.
func sortByDepth(f *sim.Frame, proj *viz.Projector) []int {
	type entry struct {
		index int
		depth float64
	}
	entries := make([]entry, 0, len(f.Bodies))
	for i := range f.Bodies {
		if p := proj.Project(f.Bodies[i].Position); p.Visible {
			entries = append(entries, entry{i, p.Depth})
		}
	}
	// insertion sort; tens of bodies
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].depth > entries[j-1].depth; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.index
	}
	return out
}

// SeriesToSVG plots a per-tick series as a polyline, x = tick.
func SeriesToSVG(w io.Writer, values []float64, width, height int, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("series needs at least 2 samples, got %d", len(values))
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke)

	n := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / n * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
