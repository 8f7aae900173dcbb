package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/gravbox/internal/geom"
)

// Params holds every physical and numerical knob of a simulation. All
// of them can be swapped at a step boundary via QueueParams.
type Params struct {
	G         float64 // gravitational constant
	Softening float64 // added to squared distance in the force law
	Theta     float64 // tree opening angle, 0 means exact pairwise

	Restitution     float64 // pair collision restitution in [0, 1]
	WallRestitution float64 // wall bounce restitution in [0, 1]

	MinDt  float64 // floor for the adaptive step
	MaxDt  float64 // ceiling for the adaptive step
	Safety float64 // fraction of min radius a particle may travel per step

	Bounds geom.Rect // world box particles must stay inside
}

func DefaultParams() Params {
	return Params{
		G:               1.0,
		Softening:       0.05,
		Theta:           0.5,
		Restitution:     1.0,
		WallRestitution: 0.99,
		MinDt:           1e-8,
		MaxDt:           0.01,
		Safety:          0.25,
		Bounds:          geom.NewRect(-50, -50, 50, 50),
	}
}

func (p Params) Validate() error {
	if !isFinite(p.G) || !isFinite(p.Softening) || !isFinite(p.Theta) {
		return fmt.Errorf("%w: non-finite physics parameter", ErrInvalidConfig)
	}
	if p.Softening < 0 {
		return fmt.Errorf("%w: softening must be non-negative, got %g", ErrInvalidConfig, p.Softening)
	}
	if p.Theta < 0 {
		return fmt.Errorf("%w: theta must be non-negative, got %g", ErrInvalidConfig, p.Theta)
	}
	if p.Restitution < 0 || p.Restitution > 1 {
		return fmt.Errorf("%w: restitution must be in [0, 1], got %g", ErrInvalidConfig, p.Restitution)
	}
	if p.WallRestitution < 0 || p.WallRestitution > 1 {
		return fmt.Errorf("%w: wall restitution must be in [0, 1], got %g", ErrInvalidConfig, p.WallRestitution)
	}
	if p.MinDt <= 0 || !isFinite(p.MinDt) {
		return fmt.Errorf("%w: min dt must be positive, got %g", ErrInvalidConfig, p.MinDt)
	}
	if p.MaxDt < p.MinDt || !isFinite(p.MaxDt) {
		return fmt.Errorf("%w: max dt %g below min dt %g", ErrInvalidConfig, p.MaxDt, p.MinDt)
	}
	if p.Safety <= 0 || !isFinite(p.Safety) {
		return fmt.Errorf("%w: safety factor must be positive, got %g", ErrInvalidConfig, p.Safety)
	}
	if !p.Bounds.Valid() {
		return fmt.Errorf("%w: world bounds must have positive extent", ErrInvalidConfig)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
