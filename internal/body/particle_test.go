package body

import (
	"math"
	"testing"

	"github.com/san-kum/gravbox/internal/geom"
)

func TestKineticEnergyAndMomentum(t *testing.T) {
	p := Particle{Mass: 2.0, Vel: geom.Vec2{X: 3, Y: 4}}

	if got := p.KineticEnergy(); got != 25 {
		t.Errorf("expected KE 25, got %f", got)
	}
	if got := p.Momentum(); got != (geom.Vec2{X: 6, Y: 8}) {
		t.Errorf("expected momentum (6,8), got %v", got)
	}
	if got := p.Speed(); got != 5 {
		t.Errorf("expected speed 5, got %f", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		p    Particle
		ok   bool
	}{
		{"ok", Particle{Mass: 1, Radius: 0.5}, true},
		{"point particle", Particle{Mass: 1}, true},
		{"zero mass", Particle{Mass: 0}, false},
		{"negative mass", Particle{Mass: -1}, false},
		{"negative radius", Particle{Mass: 1, Radius: -0.1}, false},
		{"nan position", Particle{Mass: 1, Pos: geom.Vec2{X: math.NaN(), Y: 0}}, false},
		{"inf velocity", Particle{Mass: 1, Vel: geom.Vec2{X: 0, Y: math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Valid() != tt.ok {
				t.Errorf("expected %v", tt.ok)
			}
		})
	}
}
