package export

import (
	"strings"
	"testing"

	"github.com/san-kum/gravbox/internal/geom"
)

func TestTrailsToSVG(t *testing.T) {
	bounds := geom.NewRect(-10, -10, 10, 10)
	trails := []Trail{
		{Points: []geom.Vec2{{X: -10, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}, Color: "#ff0000"},
		{Points: []geom.Vec2{{X: 0, Y: -10}, {X: 0, Y: 10}}},
	}

	svg := TrailsToSVG(trails, bounds, 200, 100)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing closing tag")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Error("explicit trail color not used")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("default trail color not applied")
	}
	// World (-10, 0) maps to viewport (0, 50).
	if !strings.Contains(svg, "M0.0,50.0") {
		t.Errorf("left-edge point not projected to viewport origin: %s", svg)
	}
	// World Y up is screen Y down: (0, 10) maps to (100, 0).
	if !strings.Contains(svg, "L100.0,0.0") {
		t.Error("top point not projected to screen top")
	}
}

func TestTrailsToSVGSkipsShortTrails(t *testing.T) {
	bounds := geom.NewRect(0, 0, 1, 1)
	trails := []Trail{
		{Points: []geom.Vec2{{X: 0.5, Y: 0.5}}},
		{Points: nil},
	}
	svg := TrailsToSVG(trails, bounds, 100, 100)
	if strings.Contains(svg, "<path") {
		t.Error("single-point trails should not produce paths")
	}
}
