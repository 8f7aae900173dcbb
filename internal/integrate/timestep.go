package integrate

import "github.com/san-kum/gravbox/internal/body"

// TimestepController picks the step size before each integration from
// the fastest particle and the smallest radius, bounding per-step
// displacement to Safety times the smallest radius so a particle
// cannot tunnel through a collision in one step.
type TimestepController struct {
	MinDt  float64
	MaxDt  float64
	Safety float64 // fraction of the smallest radius travelled per step
}

// Select returns the adaptive dt, clamped to [MinDt, MaxDt]. With no
// particles, or everything at rest, it returns MaxDt. MinDt wins over
// the displacement bound so the simulation always makes progress.
func (c *TimestepController) Select(particles []body.Particle) float64 {
	var maxSpeed float64
	minRadius := -1.0

	for i := range particles {
		if s := particles[i].Speed(); s > maxSpeed {
			maxSpeed = s
		}
		if r := particles[i].Radius; r > 0 && (minRadius < 0 || r < minRadius) {
			minRadius = r
		}
	}

	if maxSpeed == 0 || minRadius <= 0 {
		return c.MaxDt
	}

	dt := c.Safety * minRadius / maxSpeed
	if dt > c.MaxDt {
		dt = c.MaxDt
	}
	if dt < c.MinDt {
		dt = c.MinDt
	}
	return dt
}
