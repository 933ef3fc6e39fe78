package field

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

// Options is the flat parameter set shared by every particle in a
// field.
type Options struct {
	Density       int     // particles per 100,000 px² of viewport
	MinSpeed      float64 // px per tick
	MaxSpeed      float64 // px per tick
	DotRadius     float64 // px
	DotColor      color.RGBA
	LineColor     color.RGBA
	LineWidth     float64 // px
	Threshold     float64 // edge distance where repulsion ramps up, px
	Strength      float64 // repulsion scale
	MaxLineLength float64 // px; 0 disables line drawing
	Turbulence    float64 // perlin drift scale; 0 disables
}

// Field owns an ordered particle slice and the shared options.
// Particle identity is slice index; the order never changes after
// Populate. A Field is not safe for concurrent use: one goroutine
// owns the step/render cycle.
type Field struct {
	Particles []Particle
	Opts      Options
	Bounds    Bounds

	rng   *rand.Rand
	drift *drift
	tick  float64
}

// New validates opts and bounds and returns an empty field; Populate
// fills it.
func New(opts Options, bounds Bounds, rng *rand.Rand) (*Field, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("bounds must be positive, got %gx%g", bounds.Width, bounds.Height)
	}
	if opts.MinSpeed < 0 || opts.MaxSpeed < 0 {
		return nil, fmt.Errorf("speeds must be non-negative, got [%g, %g]", opts.MinSpeed, opts.MaxSpeed)
	}
	if opts.MaxSpeed < opts.MinSpeed {
		return nil, fmt.Errorf("max speed %g below min speed %g", opts.MaxSpeed, opts.MinSpeed)
	}
	if opts.Density < 0 {
		return nil, fmt.Errorf("density must be non-negative, got %d", opts.Density)
	}
	if opts.DotRadius < 0 || opts.LineWidth < 0 || opts.MaxLineLength < 0 {
		return nil, fmt.Errorf("dot radius, line width and max line length must be non-negative")
	}
	f := &Field{Opts: opts, Bounds: bounds, rng: rng}
	if opts.Turbulence > 0 {
		f.drift = newDrift(rng.Int63())
	}
	return f, nil
}

// ParticleCount is the population for a viewport: density particles
// per 100,000 px², rounded on the area term.
func ParticleCount(bounds Bounds, density int) int {
	return int(math.Round(0.00001*bounds.Width*bounds.Height)) * density
}

// Populate seeds the field. The count is fixed at call time; a later
// viewport resize does not re-seed.
func (f *Field) Populate() {
	n := ParticleCount(f.Bounds, f.Opts.Density)
	f.Particles = make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		f.Particles = append(f.Particles,
			NewParticle(f.rng, f.Opts.DotColor, f.Opts.DotRadius, f.Opts.MinSpeed, f.Opts.MaxSpeed, f.Bounds))
	}
}

// Step advances every particle by one tick under the edge repulsion
// field, plus the turbulence drift when enabled.
func (f *Field) Step(dt float64) {
	f.tick += dt
	for i := range f.Particles {
		p := &f.Particles[i]
		force := EdgeForce(p.Pos, f.Bounds, f.Opts.Threshold).Scale(f.Opts.Strength)
		if f.drift != nil {
			force = force.Add(f.drift.at(p.Pos, f.tick).Scale(f.Opts.Turbulence))
		}
		p.AdvanceWithForce(dt, force)
	}
}

// Links counts unordered particle pairs close enough for a connecting
// line. Zero when line drawing is disabled.
func (f *Field) Links() int {
	if f.Opts.MaxLineLength == 0 {
		return 0
	}
	links := 0
	for i := 0; i < len(f.Particles); i++ {
		for j := i + 1; j < len(f.Particles); j++ {
			if f.Particles[i].Pos.Distance(f.Particles[j].Pos) < f.Opts.MaxLineLength {
				links++
			}
		}
	}
	return links
}

// Escaped counts particles currently outside the nominal bounds. The
// repulsion is soft, so this can be briefly nonzero under high speeds.
func (f *Field) Escaped() int {
	n := 0
	for i := range f.Particles {
		pos := f.Particles[i].Pos
		if pos.X < 0 || pos.X > f.Bounds.Width || pos.Y < 0 || pos.Y > f.Bounds.Height {
			n++
		}
	}
	return n
}
