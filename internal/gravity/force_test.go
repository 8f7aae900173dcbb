package gravity

import (
	"math"
	"testing"

	"github.com/san-kum/gravbox/internal/geom"
)

func TestForceDirectionAndMagnitude(t *testing.T) {
	a := geom.Vec2{X: 0, Y: 0}
	b := geom.Vec2{X: 3, Y: 0}

	f := Force(2.0, a, 4.0, b, 1.0, 0)

	expected := 2.0 * 4.0 / 9.0
	if math.Abs(f.X-expected) > 1e-12 {
		t.Errorf("expected magnitude %f, got %f", expected, f.X)
	}
	if f.Y != 0 {
		t.Errorf("expected no Y component, got %f", f.Y)
	}
	if f.X <= 0 {
		t.Error("force should point from A toward B")
	}
}

func TestForceSymmetry(t *testing.T) {
	a := geom.Vec2{X: 1, Y: 2}
	b := geom.Vec2{X: -3, Y: 5}

	fab := Force(1.5, a, 2.5, b, 1.0, 0.1)
	fba := Force(2.5, b, 1.5, a, 1.0, 0.1)

	if math.Abs(fab.X+fba.X) > 1e-12 || math.Abs(fab.Y+fba.Y) > 1e-12 {
		t.Errorf("forces not equal and opposite: %v vs %v", fab, fba)
	}
}

func TestSofteningBoundsForce(t *testing.T) {
	a := geom.Vec2{X: 0, Y: 0}
	b := geom.Vec2{X: 1e-9, Y: 0}

	f := Force(1.0, a, 1.0, b, 1.0, 0.1)

	// With softening s, the magnitude can never exceed m1*m2/s^2.
	if f.Len() > 1.0/(0.1*0.1) {
		t.Errorf("softened force exceeds bound: %f", f.Len())
	}
}

func TestCoincidentPositionsZeroForce(t *testing.T) {
	p := geom.Vec2{X: 4, Y: -1}
	if f := Force(1, p, 1, p, 1.0, 0.01); f != (geom.Vec2{}) {
		t.Errorf("expected zero force, got %v", f)
	}
	if f := Force(1, p, 1, p, 1.0, 0); f != (geom.Vec2{}) {
		t.Errorf("expected zero force with zero softening, got %v", f)
	}
}

func TestInverseSquareFalloff(t *testing.T) {
	a := geom.Vec2{X: 0, Y: 0}
	near := Force(1, a, 1, geom.Vec2{X: 1, Y: 0}, 1.0, 0)
	far := Force(1, a, 1, geom.Vec2{X: 2, Y: 0}, 1.0, 0)

	if math.Abs(near.Len()/far.Len()-4.0) > 1e-9 {
		t.Errorf("expected 4x falloff at double distance, got %f", near.Len()/far.Len())
	}
}
