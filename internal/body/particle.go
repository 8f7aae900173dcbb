// Package body defines the particle data model shared by the force,
// collision and integration passes.
package body

import "github.com/san-kum/gravbox/internal/geom"

// Particle is a disc with point mass. Force accumulates over one step
// and is reset by the simulation before each force pass.
type Particle struct {
	ID     int
	Pos    geom.Vec2
	Vel    geom.Vec2
	Force  geom.Vec2
	Mass   float64
	Radius float64
}

func (p *Particle) Speed() float64 { return p.Vel.Len() }

func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Vel.LenSq()
}

func (p *Particle) Momentum() geom.Vec2 {
	return p.Vel.Scale(p.Mass)
}

// Valid reports whether the particle satisfies the state invariants:
// positive mass, non-negative radius, finite position and velocity.
func (p *Particle) Valid() bool {
	return p.Mass > 0 && p.Radius >= 0 && p.Pos.IsFinite() && p.Vel.IsFinite()
}
