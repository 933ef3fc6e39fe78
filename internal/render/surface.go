// Package render turns a particle field into draw calls against an
// abstract 2-D surface. Backends (raylib window, braille canvas, SVG
// writer) implement [Surface]; the renderer never knows which one it
// is feeding.
package render

import (
	"image/color"

	"github.com/san-kum/plexus/internal/field"
)

// Surface is the drawing target contract.
type Surface interface {
	FillCircle(center field.Vec2, radius float64, c color.RGBA)
	StrokeLine(p0, p1 field.Vec2, width float64, c color.RGBA)
}

// Recorder is a Surface that captures draw calls for inspection.
type Recorder struct {
	Circles []CircleCall
	Lines   []LineCall
}

type CircleCall struct {
	Center field.Vec2
	Radius float64
	Color  color.RGBA
}

type LineCall struct {
	P0, P1 field.Vec2
	Width  float64
	Color  color.RGBA
}

func (r *Recorder) FillCircle(center field.Vec2, radius float64, c color.RGBA) {
	r.Circles = append(r.Circles, CircleCall{Center: center, Radius: radius, Color: c})
}

func (r *Recorder) StrokeLine(p0, p1 field.Vec2, width float64, c color.RGBA) {
	r.Lines = append(r.Lines, LineCall{P0: p0, P1: p1, Width: width, Color: c})
}

func (r *Recorder) Reset() {
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
}
