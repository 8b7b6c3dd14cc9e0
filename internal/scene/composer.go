// Package scene builds the body store once at startup, skinning bodies with
// whichever logo textures loaded or with a flat colour palette.
package scene

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/texture"
)

const DefaultCount = 50

// Palette is the fallback body colour set, assigned by index.
var Palette = []uint32{0x3b82f6, 0x14b8a6, 0xeab308, 0x22c55e, 0xef4444}

// Scene is the result of composition. Skin texture indices refer to Textures.
type Scene struct {
	Store    *dynamo.Store
	Textures []image.Image
}

func (s *Scene) Textured() bool { return len(s.Textures) > 0 }

type Composer struct {
	Loader  texture.Loader
	Count   int
	Offline bool

	Palette      []uint32
	ShellMin     float64
	ShellMax     float64
	ScaleMin     float64
	ScaleMax     float64
	Drift        float64 // initial velocity range per axis
	TexturedSpin float64
	PaletteSpin  float64

	Rand *rand.Rand
	Log  io.Writer
}

func NewComposer(loader texture.Loader, rng *rand.Rand) *Composer {
	return &Composer{
		Loader:       loader,
		Count:        DefaultCount,
		Palette:      Palette,
		ShellMin:     5,
		ShellMax:     13,
		ScaleMin:     0.3,
		ScaleMax:     1.0,
		Drift:        0.01,
		TexturedSpin: 0.001,
		PaletteSpin:  0.005,
		Rand:         rng,
		Log:          os.Stderr,
	}
}

// Compose fetches urls through the loader, waits for every result and builds
// the store. Fetch failures are reported to Log and skipped; when nothing
// loads the palette is used instead.
func (c *Composer) Compose(ctx context.Context, urls []string) (*Scene, error) {
	if c.Count <= 0 {
		return nil, fmt.Errorf("compose: count %d: %w", c.Count, dynamo.ErrBodyCount)
	}
	if len(c.Palette) == 0 {
		return nil, fmt.Errorf("compose: empty palette: %w", dynamo.ErrParameterBounds)
	}

	var textures []image.Image
	if !c.Offline && c.Loader != nil && len(urls) > 0 {
		results := c.Loader.LoadAll(ctx, urls)
		for _, r := range results {
			if !r.OK() {
				c.logf("texture %s: %v\n", r.URL, r.Err)
			}
		}
		textures = texture.Valid(results)
		if len(textures) == 0 {
			c.logf("no textures loaded, using palette\n")
		}
	}

	store, err := c.Build(len(textures))
	if err != nil {
		return nil, err
	}
	return &Scene{Store: store, Textures: textures}, nil
}

// Build places Count bodies on a shell around the origin. With textures > 0
// body i uses texture i%textures, otherwise palette colour i%len(Palette).
func (c *Composer) Build(textures int) (*dynamo.Store, error) {
	spin := c.PaletteSpin
	if textures > 0 {
		spin = c.TexturedSpin
	}

	bodies := make([]dynamo.Body, c.Count)
	for i := range bodies {
		var skin dynamo.Skin
		if textures > 0 {
			skin = dynamo.TextureSkin(i % textures)
		} else {
			skin = dynamo.ColorSkin(c.Palette[i%len(c.Palette)])
		}

		b := dynamo.NewBody(c.shellPoint(), c.between(c.ScaleMin, c.ScaleMax), skin)
		b.Velocity = dynamo.Jitter(c.Rand, c.Drift)
		b.Spin = dynamo.Jitter(c.Rand, spin)
		bodies[i] = b
	}
	return dynamo.NewStore(bodies)
}

// shellPoint samples a point uniformly in direction with radius in
// [ShellMin, ShellMax).
func (c *Composer) shellPoint() mgl64.Vec3 {
	theta := c.Rand.Float64() * 2 * math.Pi
	phi := math.Acos(2*c.Rand.Float64() - 1)
	r := c.between(c.ShellMin, c.ShellMax)
	return mgl64.Vec3{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
	}
}

func (c *Composer) between(lo, hi float64) float64 {
	return lo + c.Rand.Float64()*(hi-lo)
}

func (c *Composer) logf(format string, args ...any) {
	if c.Log == nil {
		return
	}
	fmt.Fprintf(c.Log, format, args...)
}
