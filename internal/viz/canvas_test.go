package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel set")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected empty cell after clear")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)
	// No panic and nothing set.
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-range set modified the grid")
			}
		}
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestEnergyColorRange(t *testing.T) {
	cold := EnergyColor(0, 10)
	hot := EnergyColor(10, 10)
	if cold == hot {
		t.Error("expected distinct colors for cold and hot")
	}
	if EnergyColor(5, 0) != EnergyColor(0, 10) {
		t.Error("zero max energy should map to the cold end")
	}
	// Clamped above the max.
	if EnergyColor(20, 10) != hot {
		t.Error("energies above max should clamp to the hot end")
	}
}
