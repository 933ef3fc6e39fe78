package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/plexus/internal/field"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected dot set at origin")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected empty braille char after clear")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(8, 0)  // 4 chars * 2 sub-pixels
	c.Set(0, 16) // 4 chars * 4 sub-pixels

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != 0x2800 {
				t.Fatalf("out-of-bounds set leaked into cell (%d,%d)", row, col)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(8, 4)

	c.DrawLine(0, 0, 15, 0)

	set := 0
	for _, cell := range c.Grid[0] {
		if cell != 0x2800 {
			set++
		}
	}
	if set != 8 {
		t.Errorf("horizontal line should touch all 8 columns, got %d", set)
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 runes per row, got %d", len([]rune(line)))
		}
	}
}

func TestCanvasSurfaceScalesField(t *testing.T) {
	c := NewCanvas(10, 10) // 20x40 sub-pixels
	s := NewCanvasSurface(c, field.Bounds{Width: 200, Height: 400})

	if s.ScaleX != 0.1 || s.ScaleY != 0.1 {
		t.Fatalf("unexpected scale: %g x %g", s.ScaleX, s.ScaleY)
	}

	// Field point (100, 200) lands at sub-pixel (10, 20), cell (5, 5).
	s.FillCircle(field.Vec2{X: 100, Y: 200}, 1, color.RGBA{A: 255})
	if c.Grid[5][5] == 0x2800 {
		t.Error("expected dot at the scaled position")
	}
}

func TestCanvasSurfaceStrokeLine(t *testing.T) {
	c := NewCanvas(10, 10)
	s := NewCanvasSurface(c, field.Bounds{Width: 20, Height: 40})

	s.StrokeLine(field.Vec2{X: 0, Y: 0}, field.Vec2{X: 19, Y: 0}, 1, color.RGBA{A: 255})

	set := 0
	for _, cell := range c.Grid[0] {
		if cell != 0x2800 {
			set++
		}
	}
	if set == 0 {
		t.Error("expected line dots on the top row")
	}
}
