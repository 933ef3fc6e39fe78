package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/plexus/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
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

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CanvasSurface adapts a braille canvas to the render surface
// contract, scaling field coordinates down to sub-pixels. Braille has
// no color, so the color arguments are ignored.
type CanvasSurface struct {
	Canvas *Canvas
	ScaleX float64
	ScaleY float64
}

// NewCanvasSurface sizes the scale so the whole field fits the canvas.
func NewCanvasSurface(canvas *Canvas, bounds field.Bounds) *CanvasSurface {
	return &CanvasSurface{
		Canvas: canvas,
		ScaleX: float64(canvas.Width*2) / bounds.Width,
		ScaleY: float64(canvas.Height*4) / bounds.Height,
	}
}

func (s *CanvasSurface) FillCircle(center field.Vec2, radius float64, _ color.RGBA) {
	cx := center.X * s.ScaleX
	cy := center.Y * s.ScaleY
	// A dot radius below one sub-pixel collapses to a single dot.
	r := radius * math.Min(s.ScaleX, s.ScaleY)
	if r < 1 {
		s.Canvas.Set(int(math.Round(cx)), int(math.Round(cy)))
		return
	}
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				s.Canvas.Set(x, y)
			}
		}
	}
}

func (s *CanvasSurface) StrokeLine(p0, p1 field.Vec2, _ float64, _ color.RGBA) {
	s.Canvas.DrawLine(
		int(math.Round(p0.X*s.ScaleX)), int(math.Round(p0.Y*s.ScaleY)),
		int(math.Round(p1.X*s.ScaleX)), int(math.Round(p1.Y*s.ScaleY)))
}
