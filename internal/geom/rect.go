package geom

// Rect is an axis-aligned rectangle with Min at the lower-left corner.
type Rect struct {
	Min, Max Vec2
}

func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Vec2{x0, y0}, Max: Vec2{x1, y1}}
}

func (r Rect) W() float64 { return r.Max.X - r.Min.X }
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Valid reports whether the rectangle has positive area.
func (r Rect) Valid() bool {
	return r.W() > 0 && r.H() > 0
}

// Contains uses half-open bounds on the upper side so that a point on
// the midline of a split always lands in exactly one quadrant.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Quadrant indices.
const (
	SW = iota
	SE
	NW
	NE
)

// Quadrant returns one of the four exact quadrisections of r.
func (r Rect) Quadrant(q int) Rect {
	c := r.Center()
	switch q {
	case SW:
		return Rect{r.Min, c}
	case SE:
		return Rect{Vec2{c.X, r.Min.Y}, Vec2{r.Max.X, c.Y}}
	case NW:
		return Rect{Vec2{r.Min.X, c.Y}, Vec2{c.X, r.Max.Y}}
	default:
		return Rect{c, r.Max}
	}
}

// QuadrantFor returns the quadrant index that contains p, using the
// same midline convention as Contains.
func (r Rect) QuadrantFor(p Vec2) int {
	c := r.Center()
	q := SW
	if p.X >= c.X {
		q |= 1
	}
	if p.Y >= c.Y {
		q |= 2
	}
	return q
}
