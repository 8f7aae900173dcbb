// Package collision detects and resolves particle-particle overlaps
// and particle-wall penetrations via impulse exchange.
package collision

import (
	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/geom"
)

// Resolver applies impulse-based collision response. Restitution 1
// gives fully elastic collisions (kinetic energy conserved along the
// contact normal), 0 gives perfectly inelastic ones. Pair and wall
// restitution are configured separately.
type Resolver struct {
	Restitution     float64
	WallRestitution float64
}

// Resolve runs a single pass over all particle pairs in ascending
// (i, j) order, then reflects wall penetrations. One pass per step is
// the documented approximation: simultaneous multi-way contacts may
// show minor energy drift, traded for determinism and simplicity.
func (r *Resolver) Resolve(particles []body.Particle, bounds geom.Rect) {
	for i := 0; i < len(particles)-1; i++ {
		for j := i + 1; j < len(particles); j++ {
			r.resolvePair(&particles[i], &particles[j])
		}
	}
	for i := range particles {
		r.resolveWalls(&particles[i], bounds)
	}
}

func (r *Resolver) resolvePair(a, b *body.Particle) {
	delta := b.Pos.Sub(a.Pos)
	distSq := delta.LenSq()
	sum := a.Radius + b.Radius
	if distSq >= sum*sum {
		return
	}

	var normal geom.Vec2
	var overlap float64
	if distSq == 0 {
		// Perfectly coincident centers leave the contact normal
		// undefined; nudge apart along a fixed axis so the pair
		// separates the same way in every run.
		normal = geom.Vec2{X: 1}
		overlap = sum
	} else {
		dist := delta.Len()
		normal = delta.Scale(1 / dist)
		overlap = sum - dist
	}

	// Impulse along the line of centers, tangential components
	// untouched. Pairs already separating are left alone so the
	// positional correction of an earlier pair cannot re-trigger an
	// opposite impulse in the same pass.
	relVel := b.Vel.Sub(a.Vel).Dot(normal)
	if relVel < 0 {
		va := a.Vel.Dot(normal)
		vb := b.Vel.Dot(normal)
		ma, mb := a.Mass, b.Mass

		vaNew := (va*(ma-mb) + 2*mb*vb) / (ma + mb)
		vbNew := (vb*(mb-ma) + 2*ma*va) / (ma + mb)

		// Restitution scales the post-collision relative normal
		// velocity: 1 keeps the elastic exchange exact, 0 leaves the
		// pair moving with the common center-of-mass velocity.
		vcm := (ma*va + mb*vb) / (ma + mb)
		vaNew = vcm + (vaNew-vcm)*r.Restitution
		vbNew = vcm + (vbNew-vcm)*r.Restitution

		a.Vel = a.Vel.Add(normal.Scale(vaNew - va))
		b.Vel = b.Vel.Add(normal.Scale(vbNew - vb))
	}

	// Positional separation proportional to inverse mass, so the
	// lighter particle moves farther.
	invA := 1 / a.Mass
	invB := 1 / b.Mass
	corr := normal.Scale(overlap / (invA + invB))
	a.Pos = a.Pos.Sub(corr.Scale(invA))
	b.Pos = b.Pos.Add(corr.Scale(invB))
}

func (r *Resolver) resolveWalls(p *body.Particle, bounds geom.Rect) {
	if p.Pos.X-p.Radius < bounds.Min.X {
		p.Pos.X = bounds.Min.X + p.Radius
		if p.Vel.X < 0 {
			p.Vel.X = -p.Vel.X * r.WallRestitution
		}
	} else if p.Pos.X+p.Radius > bounds.Max.X {
		p.Pos.X = bounds.Max.X - p.Radius
		if p.Vel.X > 0 {
			p.Vel.X = -p.Vel.X * r.WallRestitution
		}
	}

	if p.Pos.Y-p.Radius < bounds.Min.Y {
		p.Pos.Y = bounds.Min.Y + p.Radius
		if p.Vel.Y < 0 {
			p.Vel.Y = -p.Vel.Y * r.WallRestitution
		}
	} else if p.Pos.Y+p.Radius > bounds.Max.Y {
		p.Pos.Y = bounds.Max.Y - p.Radius
		if p.Vel.Y > 0 {
			p.Vel.Y = -p.Vel.Y * r.WallRestitution
		}
	}
}
