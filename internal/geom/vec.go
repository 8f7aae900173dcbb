package geom

import "math"

// Vec2 is a 2D vector used for positions, velocities and forces.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64   { return math.Sqrt(v.LenSq()) }

// Norm returns the unit vector in the direction of v, or the zero
// vector when v has zero length.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) Dist(o Vec2) float64   { return o.Sub(v).Len() }
func (v Vec2) DistSq(o Vec2) float64 { return o.Sub(v).LenSq() }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
