package viz

import colorful "github.com/lucasb-eyer/go-colorful"

// EnergyColor maps a particle's kinetic energy to a hue ramp from cold
// blue through green to hot red, scaled against the current maximum so
// the palette stays useful as the system heats up or cools down.
func EnergyColor(ke, maxKE float64) string {
	t := 0.0
	if maxKE > 0 {
		t = ke / maxKE
		if t > 1 {
			t = 1
		}
	}
	// 240 degrees (blue) down to 0 (red).
	return colorful.Hsv(240*(1-t), 0.9, 1.0).Hex()
}
