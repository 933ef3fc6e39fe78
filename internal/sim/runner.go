package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/plexus/internal/field"
)

// Metric accumulates a scalar over a run. Reset is called once before
// the run starts, Observe once per step before the field advances.
type Metric interface {
	Name() string
	Observe(f *field.Field, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback per step, before the field advances.
type Observer interface {
	OnStep(f *field.Field, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

// Result holds a completed run: one position snapshot per recorded
// frame, aligned with Times, plus the final metric values.
type Result struct {
	Frames  [][]field.Vec2
	Times   []float64
	Metrics map[string]float64
	Steps   int
}

// Runner drives a field for a fixed duration, recording frames and
// feeding metrics and observers along the way.
type Runner struct {
	field     *field.Field
	metrics   []Metric
	observers []Observer
}

func NewRunner(f *field.Field) *Runner {
	return &Runner{
		field:     f,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([][]field.Vec2, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, snapshot(r.field))
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.field, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.field, t)
		}

		r.field.Step(cfg.Dt)
		t += cfg.Dt
		result.Steps++

		result.Frames = append(result.Frames, snapshot(r.field))
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func snapshot(f *field.Field) []field.Vec2 {
	pos := make([]field.Vec2, len(f.Particles))
	for i := range f.Particles {
		pos[i] = f.Particles[i].Pos
	}
	return pos
}
