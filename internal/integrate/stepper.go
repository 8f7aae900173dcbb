// Package integrate advances particle state from accumulated forces
// and selects the adaptive time step.
package integrate

import "github.com/san-kum/gravbox/internal/body"

// Stepper advances positions and velocities in place using the forces
// accumulated on each particle.
type Stepper interface {
	Step(particles []body.Particle, dt float64)
}

// SemiImplicit is symplectic Euler: velocity is updated from the
// current force first, then position from the new velocity. Unlike
// explicit Euler this does not systematically pump energy into
// oscillatory systems.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit { return &SemiImplicit{} }

func (s *SemiImplicit) Step(particles []body.Particle, dt float64) {
	for i := range particles {
		p := &particles[i]
		p.Vel = p.Vel.Add(p.Force.Scale(dt / p.Mass))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}

// Leapfrog is the kick-drift-kick variant. With one force evaluation
// per step both half-kicks use the same acceleration, so it matches
// SemiImplicit's cost while keeping the drift centered on the
// half-step velocity.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog { return &Leapfrog{} }

func (l *Leapfrog) Step(particles []body.Particle, dt float64) {
	for i := range particles {
		p := &particles[i]
		half := p.Force.Scale(dt / (2 * p.Mass))
		p.Vel = p.Vel.Add(half)
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Add(half)
	}
}

// New returns the stepper registered under name, defaulting to
// semi-implicit Euler.
func New(name string) Stepper {
	switch name {
	case "leapfrog":
		return NewLeapfrog()
	default:
		return NewSemiImplicit()
	}
}
