package field_test

import (
	"image/color"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/field"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func testOptions() field.Options {
	return field.Options{
		Density:       5,
		MinSpeed:      0.2,
		MaxSpeed:      1.5,
		DotRadius:     2,
		DotColor:      white,
		LineColor:     white,
		LineWidth:     1,
		Threshold:     50,
		Strength:      2,
		MaxLineLength: 100,
	}
}

var _ = Describe("Particle", func() {
	Describe("Advance", func() {
		It("renormalizes an overspeed velocity to exactly MaxSpeed", func() {
			p := field.Particle{Vel: field.Vec2{X: 3, Y: 4}, MaxSpeed: 2}
			p.Advance(1)
			Expect(p.Vel.Length()).To(BeNumerically("~", 2, 1e-12))
			// direction survives the cap
			Expect(p.Vel.X).To(BeNumerically("~", 1.2, 1e-12))
			Expect(p.Vel.Y).To(BeNumerically("~", 1.6, 1e-12))
		})

		It("holds the cap invariant across repeated steps", func() {
			p := field.Particle{Vel: field.Vec2{X: 30, Y: -40}, MaxSpeed: 1.5}
			for i := 0; i < 100; i++ {
				p.Advance(0.5)
				Expect(p.Vel.Length()).To(BeNumerically("<=", 1.5+1e-9))
			}
		})

		It("leaves a legal velocity untouched", func() {
			p := field.Particle{Vel: field.Vec2{X: 0.3, Y: 0.4}, MaxSpeed: 1}
			p.Advance(1)
			Expect(p.Vel).To(Equal(field.Vec2{X: 0.3, Y: 0.4}))
		})

		It("updates position linearly in the post-cap velocity", func() {
			p := field.Particle{Pos: field.Vec2{X: 10, Y: 20}, Vel: field.Vec2{X: 1, Y: -2}, MaxSpeed: 10}
			p.Advance(0.5)
			Expect(p.Pos).To(Equal(field.Vec2{X: 10.5, Y: 19}))
		})
	})

	Describe("AdvanceWithForce", func() {
		It("accelerates a stationary particle to exactly 2*F*dt", func() {
			p := field.Particle{MaxSpeed: 1000}
			p.AdvanceWithForce(0.5, field.Vec2{X: 3, Y: -2})
			Expect(p.Vel).To(Equal(field.Vec2{X: 3, Y: -2}))
		})

		It("moves by the post-force velocity times dt", func() {
			p := field.Particle{Pos: field.Vec2{X: 1, Y: 1}, Vel: field.Vec2{X: 1, Y: 0}, MaxSpeed: 1000}
			p.AdvanceWithForce(1, field.Vec2{X: 0.5, Y: 0})
			// vel = (1,0) + (0.5,0)*2 = (2,0)
			Expect(p.Vel).To(Equal(field.Vec2{X: 2, Y: 0}))
			Expect(p.Pos).To(Equal(field.Vec2{X: 3, Y: 1}))
		})
	})

	Describe("EdgeForce", func() {
		bounds := field.Bounds{Width: 1e6, Height: 1e6}

		It("floors the divisor at 0.1 on the threshold line", func() {
			// On the threshold line the raw top-edge divisor is 0; the
			// floor turns that contribution into exactly 1/0.1.
			f := field.EdgeForce(field.Vec2{X: 5e5, Y: 50}, bounds, 50)
			Expect(f.Y).To(BeNumerically("~", 10, 1e-5))
		})

		It("keeps the floor engaged just inside the threshold", func() {
			f := field.EdgeForce(field.Vec2{X: 5e5, Y: 50.05}, bounds, 50)
			Expect(f.Y).To(BeNumerically("~", 10, 1e-5))
		})

		It("vanishes at the center of a symmetric box", func() {
			b := field.Bounds{Width: 100, Height: 100}
			f := field.EdgeForce(field.Vec2{X: 50, Y: 50}, b, 10)
			Expect(f.X).To(BeZero())
			Expect(f.Y).To(BeZero())
		})

		It("points away from a close edge", func() {
			b := field.Bounds{Width: 800, Height: 600}
			f := field.EdgeForce(field.Vec2{X: 30, Y: 300}, b, 20)
			Expect(f.X).To(BeNumerically(">", 0))
		})
	})

	Describe("NewParticle", func() {
		It("spawns inside the bounds", func() {
			rng := rand.New(rand.NewSource(42))
			bounds := field.Bounds{Width: 800, Height: 600}
			for i := 0; i < 10000; i++ {
				p := field.NewParticle(rng, white, 2, 0.2, 1.5, bounds)
				Expect(p.Pos.X).To(And(BeNumerically(">=", 0), BeNumerically("<=", 800)))
				Expect(p.Pos.Y).To(And(BeNumerically(">=", 0), BeNumerically("<=", 600)))
			}
		})

		It("spawns with speed in the configured range", func() {
			rng := rand.New(rand.NewSource(7))
			bounds := field.Bounds{Width: 100, Height: 100}
			for i := 0; i < 1000; i++ {
				p := field.NewParticle(rng, white, 2, 0.5, 2.0, bounds)
				Expect(p.Vel.Length()).To(And(
					BeNumerically(">=", 0.5-1e-9),
					BeNumerically("<=", 2.0+1e-9),
				))
			}
		})
	})
})

var _ = Describe("Field", func() {
	Describe("New", func() {
		It("rejects a zero-size viewport", func() {
			_, err := field.New(testOptions(), field.Bounds{}, rand.New(rand.NewSource(1)))
			Expect(err).To(HaveOccurred())
		})

		It("rejects negative speeds", func() {
			opts := testOptions()
			opts.MinSpeed = -1
			_, err := field.New(opts, field.Bounds{Width: 100, Height: 100}, rand.New(rand.NewSource(1)))
			Expect(err).To(HaveOccurred())
		})

		It("rejects an inverted speed range", func() {
			opts := testOptions()
			opts.MinSpeed, opts.MaxSpeed = 2, 1
			_, err := field.New(opts, field.Bounds{Width: 100, Height: 100}, rand.New(rand.NewSource(1)))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Populate", func() {
		It("derives the count from area and density", func() {
			f, err := field.New(testOptions(), field.Bounds{Width: 1000, Height: 1000}, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			f.Populate()
			// round(0.00001 * 1,000,000) * 5
			Expect(f.Particles).To(HaveLen(50))
		})

		It("seeds deterministically from the rng", func() {
			mk := func() *field.Field {
				f, _ := field.New(testOptions(), field.Bounds{Width: 500, Height: 400}, rand.New(rand.NewSource(99)))
				f.Populate()
				return f
			}
			Expect(mk().Particles).To(Equal(mk().Particles))
		})
	})

	Describe("Step", func() {
		It("advances particles freely when repulsion is off", func() {
			opts := testOptions()
			opts.Strength = 0
			f, _ := field.New(opts, field.Bounds{Width: 100, Height: 100}, rand.New(rand.NewSource(1)))
			f.Particles = []field.Particle{{Pos: field.Vec2{X: 10, Y: 10}, Vel: field.Vec2{X: 1, Y: 0}, MaxSpeed: 5}}
			f.Step(1)
			Expect(f.Particles[0].Pos).To(Equal(field.Vec2{X: 11, Y: 10}))
		})

		It("pushes a particle near an edge back inward", func() {
			f, _ := field.New(testOptions(), field.Bounds{Width: 200, Height: 200}, rand.New(rand.NewSource(1)))
			f.Particles = []field.Particle{{Pos: field.Vec2{X: 5, Y: 100}, MaxSpeed: 5}}
			f.Step(1)
			Expect(f.Particles[0].Vel.X).To(BeNumerically(">", 0))
		})
	})

	Describe("Links", func() {
		It("counts unordered pairs under the distance cutoff", func() {
			f, _ := field.New(testOptions(), field.Bounds{Width: 1000, Height: 1000}, rand.New(rand.NewSource(1)))
			f.Opts.MaxLineLength = 15
			f.Particles = []field.Particle{
				{Pos: field.Vec2{X: 0, Y: 0}},
				{Pos: field.Vec2{X: 10, Y: 0}},
				{Pos: field.Vec2{X: 100, Y: 0}},
			}
			Expect(f.Links()).To(Equal(1))
		})

		It("is zero when line drawing is disabled", func() {
			f, _ := field.New(testOptions(), field.Bounds{Width: 1000, Height: 1000}, rand.New(rand.NewSource(1)))
			f.Opts.MaxLineLength = 0
			f.Particles = []field.Particle{
				{Pos: field.Vec2{X: 0, Y: 0}},
				{Pos: field.Vec2{X: 1, Y: 0}},
			}
			Expect(f.Links()).To(BeZero())
		})
	})

	Describe("Escaped", func() {
		It("counts particles outside the bounds", func() {
			f, _ := field.New(testOptions(), field.Bounds{Width: 100, Height: 100}, rand.New(rand.NewSource(1)))
			f.Particles = []field.Particle{
				{Pos: field.Vec2{X: -5, Y: 50}},
				{Pos: field.Vec2{X: 50, Y: 50}},
				{Pos: field.Vec2{X: 50, Y: 120}},
			}
			Expect(f.Escaped()).To(Equal(2))
		})
	})
})
