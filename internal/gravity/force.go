// Package gravity implements the pairwise attractive force model.
package gravity

import (
	"math"

	"github.com/san-kum/gravbox/internal/geom"
)

// Force returns the attractive force exerted on mass A at posA by mass
// B at posB. The magnitude is g*mA*mB/(d^2 + softening^2) and the
// direction points from A toward B. The softening length keeps the
// force bounded as d approaches zero; it should be tuned to the same
// order as the particle radius. Exactly coincident positions yield a
// zero force (the direction is undefined); callers exclude
// self-interaction by identity before getting here.
func Force(massA float64, posA geom.Vec2, massB float64, posB geom.Vec2, g, softening float64) geom.Vec2 {
	d := posB.Sub(posA)
	r2 := d.LenSq() + softening*softening
	if r2 == 0 {
		return geom.Vec2{}
	}

	r := math.Sqrt(d.LenSq())
	if r == 0 {
		return geom.Vec2{}
	}

	mag := g * massA * massB / r2
	return d.Scale(mag / r)
}
