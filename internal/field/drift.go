package field

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	driftAlpha   = 2.0
	driftBeta    = 2.0
	driftOctaves = 3

	// world px -> noise coordinates; small so neighbouring particles
	// share a current instead of jittering independently
	driftScale = 0.004
	driftSpeed = 0.002 // tick -> noise time axis
)

// drift is a perlin-noise force field that gives the particles a slow
// wandering current. The noise sample picks a heading, so the raw
// force is always unit length before the Turbulence scale is applied.
type drift struct {
	noise *perlin.Perlin
}

func newDrift(seed int64) *drift {
	return &drift{noise: perlin.NewPerlin(driftAlpha, driftBeta, driftOctaves, seed)}
}

func (d *drift) at(pos Vec2, t float64) Vec2 {
	angle := d.noise.Noise3D(pos.X*driftScale, pos.Y*driftScale, t*driftSpeed) * 2 * math.Pi
	return Vec2{math.Cos(angle), math.Sin(angle)}
}
