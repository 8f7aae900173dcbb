package config

// Presets are named starting configurations selectable from the CLI.
var Presets = map[string]*Config{
	"cold": {
		Count: 120, Mass: 1.0, Radius: 0.25, Steps: 5000, Integrator: "semi-implicit",
		Physics: PhysicsConfig{
			G: 0.5, Softening: 0.05, Theta: 0.5,
			Restitution: 0.9, WallRestitution: 0.9,
			MinDt: 1e-8, MaxDt: 0.01, Safety: 0.25,
		},
		World: WorldConfig{MinX: -40, MinY: -40, MaxX: 40, MaxY: 40},
	},
	"hot": {
		Count: 80, Mass: 0.5, Radius: 0.2, Steps: 5000, Integrator: "semi-implicit",
		Physics: PhysicsConfig{
			G: 0.05, Softening: 0.05, Theta: 0.7,
			Restitution: 1.0, WallRestitution: 1.0,
			MinDt: 1e-8, MaxDt: 0.005, Safety: 0.2,
		},
		World: WorldConfig{MinX: -30, MinY: -30, MaxX: 30, MaxY: 30},
	},
	"binary": {
		Count: 2, Mass: 50.0, Radius: 1.0, Steps: 20000, Integrator: "leapfrog",
		Physics: PhysicsConfig{
			G: 1.0, Softening: 0.1, Theta: 0.0,
			Restitution: 1.0, WallRestitution: 1.0,
			MinDt: 1e-8, MaxDt: 0.002, Safety: 0.25,
		},
		World: WorldConfig{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
	},
	"collapse": {
		Count: 200, Mass: 2.0, Radius: 0.2, Steps: 10000, Integrator: "semi-implicit",
		Physics: PhysicsConfig{
			G: 2.0, Softening: 0.1, Theta: 0.6,
			Restitution: 0.5, WallRestitution: 0.8,
			MinDt: 1e-8, MaxDt: 0.005, Safety: 0.2,
		},
		World: WorldConfig{MinX: -60, MinY: -60, MaxX: 60, MaxY: 60},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
// Returning a copy keeps callers from mutating the shared table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
