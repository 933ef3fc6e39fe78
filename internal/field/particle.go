package field

import (
	"image/color"
	"math"
	"math/rand"
)

// Bounds is the viewport rectangle the field lives in, anchored at the
// origin.
type Bounds struct {
	Width, Height float64
}

// Particle is a point mass with a velocity cap and visual attributes.
// Radius and Color are carried for the renderer and never influence
// motion.
type Particle struct {
	Pos      Vec2
	Vel      Vec2
	MaxSpeed float64
	Radius   float64
	Color    color.RGBA
}

// NewParticle places a particle uniformly at random inside bounds,
// heading in a random direction at a speed uniform in
// [minSpeed, maxSpeed]. Randomness comes only from rng, so a seeded
// source replays exactly.
func NewParticle(rng *rand.Rand, c color.RGBA, radius, minSpeed, maxSpeed float64, bounds Bounds) Particle {
	dir := Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1}.Normalize()
	speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
	return Particle{
		Pos:      Vec2{rng.Float64() * bounds.Width, rng.Float64() * bounds.Height},
		Vel:      dir.Scale(speed),
		MaxSpeed: maxSpeed,
		Radius:   radius,
		Color:    c,
	}
}

// Advance integrates one step of free motion. A velocity above the cap
// is renormalized to exactly MaxSpeed before the position update.
func (p *Particle) Advance(dt float64) {
	if p.Vel.Length() > p.MaxSpeed {
		p.Vel = p.Vel.Normalize().Scale(p.MaxSpeed)
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// AdvanceWithForce treats force as an acceleration on a unit-mass
// particle. The effective acceleration is 2*force; the doubling is a
// tuning constant of the effect.
func (p *Particle) AdvanceWithForce(dt float64, force Vec2) {
	p.Vel = p.Vel.Add(force.Scale(2 * dt))
	p.Advance(dt)
}

// repulsionFloor keeps the edge divisors away from zero when a
// particle sits on or crosses the threshold line.
const repulsionFloor = 0.1

// EdgeForce is the soft boundary repulsion at pos: one contribution
// per edge, pointing inward, with magnitude inversely proportional to
// the threshold-offset distance to that edge.
func EdgeForce(pos Vec2, bounds Bounds, threshold float64) Vec2 {
	up := Vec2{0, -1}.Scale(1 / math.Max(repulsionFloor, bounds.Height-(pos.Y+threshold)))
	down := Vec2{0, 1}.Scale(1 / math.Max(repulsionFloor, pos.Y-threshold))
	left := Vec2{-1, 0}.Scale(1 / math.Max(repulsionFloor, bounds.Width-(pos.X+threshold)))
	right := Vec2{1, 0}.Scale(1 / math.Max(repulsionFloor, pos.X-threshold))
	return up.Add(down).Add(left).Add(right)
}

// AdvanceConstrained advances one step under the edge repulsion field.
// The repulsion is soft: a fast particle can overshoot the bounds and
// gets pushed back over the following steps.
func (p *Particle) AdvanceConstrained(dt float64, bounds Bounds, threshold, strength float64) {
	p.AdvanceWithForce(dt, EdgeForce(p.Pos, bounds, threshold).Scale(strength))
}
