package metrics

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/plexus/internal/field"
)

func emptyField(t *testing.T, maxLine float64) *field.Field {
	t.Helper()
	opts := field.Options{
		Density:       1,
		MaxSpeed:      10,
		DotColor:      color.RGBA{A: 255},
		LineColor:     color.RGBA{A: 255},
		Threshold:     50,
		Strength:      1,
		MaxLineLength: maxLine,
	}
	f, err := field.New(opts, field.Bounds{Width: 1000, Height: 1000}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	return f
}

func TestAvgSpeed(t *testing.T) {
	f := emptyField(t, 0)
	f.Particles = []field.Particle{
		{Vel: field.Vec2{X: 3, Y: 4}, MaxSpeed: 10}, // speed 5
		{Vel: field.Vec2{X: 1, Y: 0}, MaxSpeed: 10}, // speed 1
	}

	m := NewAvgSpeed()
	m.Reset()
	m.Observe(f, 0)

	if got := m.Value(); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("expected mean speed 3, got %g", got)
	}
}

func TestAvgSpeedEmptyField(t *testing.T) {
	m := NewAvgSpeed()
	m.Reset()
	m.Observe(emptyField(t, 0), 0)

	if got := m.Value(); got != 0 {
		t.Errorf("expected 0 for empty field, got %g", got)
	}
}

func TestLinksAveragesOverFrames(t *testing.T) {
	f := emptyField(t, 15)
	f.Particles = []field.Particle{
		{Pos: field.Vec2{X: 0, Y: 0}, MaxSpeed: 1},
		{Pos: field.Vec2{X: 10, Y: 0}, MaxSpeed: 1},
	}

	m := NewLinks()
	m.Reset()
	m.Observe(f, 0) // one pair within cutoff

	f.Particles[1].Pos = field.Vec2{X: 100, Y: 0}
	m.Observe(f, 1) // pair now out of range

	if got := m.Value(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected mean of 1 and 0 links, got %g", got)
	}
}

func TestEscapedTracksMaximum(t *testing.T) {
	f := emptyField(t, 0)
	f.Particles = []field.Particle{
		{Pos: field.Vec2{X: -5, Y: 50}, MaxSpeed: 1},
		{Pos: field.Vec2{X: 50, Y: -5}, MaxSpeed: 1},
	}

	m := NewEscaped()
	m.Reset()
	m.Observe(f, 0)

	f.Particles[0].Pos = field.Vec2{X: 50, Y: 50}
	f.Particles[1].Pos = field.Vec2{X: 50, Y: 50}
	m.Observe(f, 1)

	if got := m.Value(); got != 2 {
		t.Errorf("escaped should keep the maximum seen, got %g", got)
	}
}

func TestResetClearsState(t *testing.T) {
	f := emptyField(t, 0)
	f.Particles = []field.Particle{{Vel: field.Vec2{X: 1, Y: 0}, MaxSpeed: 10}}

	m := NewAvgSpeed()
	m.Observe(f, 0)
	m.Reset()

	if got := m.Value(); got != 0 {
		t.Errorf("expected 0 after reset, got %g", got)
	}
}
