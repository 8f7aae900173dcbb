package sim

import (
	"math/rand"

	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/geom"
)

// Spawn places n particles of the given mass and radius uniformly at
// random inside bounds, rejection-sampling against overlaps so the
// first step does not open with a collision cascade. The same seed
// always produces the same layout. Particles start at rest.
func Spawn(n int, seed int64, mass, radius float64, bounds geom.Rect) []body.Particle {
	const maxAttempts = 64

	rng := rand.New(rand.NewSource(seed))
	particles := make([]body.Particle, 0, n)

	for i := 0; i < n; i++ {
		var pos geom.Vec2
		for attempt := 0; ; attempt++ {
			pos = geom.Vec2{
				X: bounds.Min.X + radius + rng.Float64()*(bounds.W()-2*radius),
				Y: bounds.Min.Y + radius + rng.Float64()*(bounds.H()-2*radius),
			}
			if attempt >= maxAttempts || !overlapsAny(pos, radius, particles) {
				break
			}
		}
		particles = append(particles, body.Particle{
			ID:     i,
			Pos:    pos,
			Mass:   mass,
			Radius: radius,
		})
	}
	return particles
}

func overlapsAny(pos geom.Vec2, radius float64, particles []body.Particle) bool {
	for i := range particles {
		min := radius + particles[i].Radius
		if pos.DistSq(particles[i].Pos) < min*min {
			return true
		}
	}
	return false
}
