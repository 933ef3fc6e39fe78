// Package field implements the particle field: point masses with a
// velocity cap that drift inside a viewport and get softly pushed
// away from its edges.
//
//   - [Particle]: position, velocity, cap, visual attributes
//   - [Field]: owned particle slice plus shared [Options]
//   - [EdgeForce]: the inverse-distance boundary repulsion
//
// The simulation is a closed-form per-tick update, driven externally:
//
//	f, _ := field.New(opts, bounds, rng)
//	f.Populate()
//	for range ticker {
//	    f.Step(1.0)
//	}
//
// # Thread Safety
//
// A Field is NOT thread-safe. The step/render cycle must run on a
// single goroutine that owns the field.
package field
