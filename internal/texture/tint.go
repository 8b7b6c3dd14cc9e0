package texture

import "image"

// AverageColor returns the mean opaque colour of img as 0xRRGGBB, weighting
// each pixel by its alpha. Fully transparent images yield fallback.
func AverageColor(img image.Image, fallback uint32) uint32 {
	b := img.Bounds()
	var r, g, bl, a uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			// RGBA is alpha-premultiplied, so summing it weights by alpha
			r += uint64(pr)
			g += uint64(pg)
			bl += uint64(pb)
			a += uint64(pa)
		}
	}
	if a == 0 {
		return fallback
	}
	scale := func(c uint64) uint32 { return uint32(c * 0xff / a) }
	return scale(r)<<16 | scale(g)<<8 | scale(bl)
}

// Tints averages every image, for surfaces that draw flat discs.
func Tints(imgs []image.Image, fallback uint32) []uint32 {
	out := make([]uint32, len(imgs))
	for i, img := range imgs {
		out[i] = AverageColor(img, fallback)
	}
	return out
}
