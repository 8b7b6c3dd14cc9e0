package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of Braille cells. Each cell keeps the colour of the last
// dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]uint32
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]uint32, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]uint32, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in dots.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int, color uint32) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	c.Colors[row][col] = color
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = 0
		}
	}
}

// FillCircle lights every dot whose centre lies inside the circle. Circles
// smaller than a dot still light the dot under their centre.
func (c *Canvas) FillCircle(cx, cy, r float64, color uint32) {
	if r < 0.5 {
		c.Set(int(cx), int(cy), color)
		return
	}
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	pw, ph := c.Pixels()
	if x1 < 0 || y1 < 0 || x0 >= pw || y0 >= ph {
		return
	}
	r2 := r * r
	for y := max(y0, 0); y <= min(y1, ph-1); y++ {
		dy := float64(y) + 0.5 - cy
		for x := max(x0, 0); x <= min(x1, pw-1); x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y, color)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Styled renders the canvas with each run of same-coloured cells wrapped in
// one foreground style.
func (c *Canvas) Styled() string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Colors[row][col] == c.Colors[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if color := c.Colors[row][start]; color != 0 {
				run = lipgloss.NewStyle().Foreground(Hex(color)).Render(run)
			}
			b.WriteString(run)
			start = col
		}
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Hex converts 0xRRGGBB to a lipgloss colour.
func Hex(rgb uint32) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", rgb&0xffffff))
}
