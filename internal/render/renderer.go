package render

import (
	"github.com/san-kum/plexus/internal/field"
)

// Draw paints one frame: every particle as a filled circle and, when
// line drawing is enabled, a segment for each ordered pair of
// particles strictly closer than MaxLineLength.
//
// Both directions of a qualifying pair are emitted, so every visible
// link costs two StrokeLine calls. The double draw is idempotent on
// screen and kept on purpose; see the package tests.
func Draw(f *field.Field, s Surface) {
	opts := f.Opts
	if opts.MaxLineLength == 0 {
		for i := range f.Particles {
			s.FillCircle(f.Particles[i].Pos, opts.DotRadius, opts.DotColor)
		}
		return
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		s.FillCircle(p.Pos, opts.DotRadius, opts.DotColor)
		for j := range f.Particles {
			if i == j {
				continue
			}
			q := &f.Particles[j]
			if p.Pos.Distance(q.Pos) < opts.MaxLineLength {
				s.StrokeLine(p.Pos, q.Pos, opts.LineWidth, opts.LineColor)
			}
		}
	}
}
