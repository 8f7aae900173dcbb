package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravbox/internal/geom"
	"github.com/san-kum/gravbox/internal/sim"
)

const (
	DefaultCount       = 50
	DefaultMass        = 1.0
	DefaultRadius      = 0.3
	DefaultSteps       = 5000
	DefaultTheta       = 0.5
	DefaultSoftening   = 0.05
	DefaultRestitution = 1.0
	DefaultWallDamping = 0.99
)

type Config struct {
	Count      int     `yaml:"count"`
	Mass       float64 `yaml:"mass"`
	Radius     float64 `yaml:"radius"`
	Seed       int64   `yaml:"seed"`
	Steps      int     `yaml:"steps"`
	Integrator string  `yaml:"integrator"`

	Physics PhysicsConfig `yaml:"physics"`
	World   WorldConfig   `yaml:"world"`
}

type PhysicsConfig struct {
	G               float64 `yaml:"g"`
	Softening       float64 `yaml:"softening"`
	Theta           float64 `yaml:"theta"`
	Restitution     float64 `yaml:"restitution"`
	WallRestitution float64 `yaml:"wall_restitution"`
	MinDt           float64 `yaml:"min_dt"`
	MaxDt           float64 `yaml:"max_dt"`
	Safety          float64 `yaml:"safety"`
}

type WorldConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

func DefaultConfig() *Config {
	p := sim.DefaultParams()
	return &Config{
		Count:      DefaultCount,
		Mass:       DefaultMass,
		Radius:     DefaultRadius,
		Steps:      DefaultSteps,
		Integrator: "semi-implicit",
		Physics: PhysicsConfig{
			G:               p.G,
			Softening:       DefaultSoftening,
			Theta:           DefaultTheta,
			Restitution:     DefaultRestitution,
			WallRestitution: DefaultWallDamping,
			MinDt:           p.MinDt,
			MaxDt:           p.MaxDt,
			Safety:          p.Safety,
		},
		World: WorldConfig{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the file form into the simulation parameter struct.
// Validation happens in sim.New, not here, so a bad file fails with
// the same error as a bad flag.
func (c *Config) Params() sim.Params {
	return sim.Params{
		G:               c.Physics.G,
		Softening:       c.Physics.Softening,
		Theta:           c.Physics.Theta,
		Restitution:     c.Physics.Restitution,
		WallRestitution: c.Physics.WallRestitution,
		MinDt:           c.Physics.MinDt,
		MaxDt:           c.Physics.MaxDt,
		Safety:          c.Physics.Safety,
		Bounds:          geom.NewRect(c.World.MinX, c.World.MinY, c.World.MaxX, c.World.MaxY),
	}
}
