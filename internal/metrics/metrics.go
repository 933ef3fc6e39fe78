package metrics

import (
	"math"

	"github.com/san-kum/plexus/internal/field"
)

// AvgSpeed reports the mean particle speed across the whole run: the
// average over frames of the per-frame mean speed.
type AvgSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewAvgSpeed() *AvgSpeed {
	return &AvgSpeed{name: "avg_speed"}
}

func (a *AvgSpeed) Name() string { return a.name }

func (a *AvgSpeed) Observe(f *field.Field, t float64) {
	if len(f.Particles) == 0 {
		return
	}
	total := 0.0
	for i := range f.Particles {
		total += f.Particles[i].Vel.Length()
	}
	a.sum += total / float64(len(f.Particles))
	a.samples++
}

func (a *AvgSpeed) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *AvgSpeed) Reset() {
	a.sum = 0
	a.samples = 0
}

// Links reports the mean number of particle pairs close enough to be
// connected, per frame.
type Links struct {
	name    string
	sum     float64
	samples int
}

func NewLinks() *Links {
	return &Links{name: "links"}
}

func (l *Links) Name() string { return l.name }

func (l *Links) Observe(f *field.Field, t float64) {
	l.sum += float64(f.Links())
	l.samples++
}

func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *Links) Reset() {
	l.sum = 0
	l.samples = 0
}

// Escaped reports the largest number of particles seen outside the
// viewport at any single frame. The edge force is soft, so fast
// particles can briefly overshoot the bounds.
type Escaped struct {
	name string
	max  float64
}

func NewEscaped() *Escaped {
	return &Escaped{name: "escaped"}
}

func (e *Escaped) Name() string { return e.name }

func (e *Escaped) Observe(f *field.Field, t float64) {
	e.max = math.Max(e.max, float64(f.Escaped()))
}

func (e *Escaped) Value() float64 { return e.max }

func (e *Escaped) Reset() { e.max = 0 }
