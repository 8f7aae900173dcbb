// Package export writes particle trails as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravbox/internal/geom"
)

// Trail is one particle's recorded positions in step order.
type Trail struct {
	Points []geom.Vec2
	Color  string // stroke color, e.g. "#00ff00"
}

// TrailsToSVG renders trails onto a width x height SVG viewport,
// mapping world bounds to the full viewport. World Y up becomes screen
// Y down. Trails with fewer than two points are skipped.
func TrailsToSVG(trails []Trail, bounds geom.Rect, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, tr := range trails {
		if len(tr.Points) < 2 {
			continue
		}
		color := tr.Color
		if color == "" {
			color = "#00ff00"
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, p := range tr.Points {
			x := (p.X - bounds.Min.X) / bounds.W() * float64(width)
			y := float64(height) - (p.Y-bounds.Min.Y)/bounds.H()*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
