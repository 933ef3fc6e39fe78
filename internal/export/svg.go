package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
)

// SVG is a render surface that accumulates shapes into an SVG
// document. Lines are collected before circles so dots draw on top.
type SVG struct {
	width      float64
	height     float64
	background string
	circles    []string
	lines      []string
}

func NewSVG(width, height float64, background color.RGBA) *SVG {
	return &SVG{
		width:      width,
		height:     height,
		background: hexColor(background),
	}
}

func (s *SVG) FillCircle(center field.Vec2, radius float64, c color.RGBA) {
	s.circles = append(s.circles, fmt.Sprintf(
		`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`,
		center.X, center.Y, radius, hexColor(c)))
}

func (s *SVG) StrokeLine(p0, p1 field.Vec2, width float64, c color.RGBA) {
	s.lines = append(s.lines, fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`,
		p0.X, p0.Y, p1.X, p1.Y, hexColor(c), width))
}

func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.background))

	for _, l := range s.lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	for _, c := range s.circles {
		sb.WriteString(c)
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameSVG renders the field's current frame as a standalone SVG.
func FrameSVG(f *field.Field, background color.RGBA) string {
	svg := NewSVG(f.Bounds.Width, f.Bounds.Height, background)
	render.Draw(f, svg)
	return svg.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
