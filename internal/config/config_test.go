package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Count <= 0 {
		t.Error("count should be positive")
	}
	if cfg.Physics.Theta < 0 {
		t.Error("theta should be non-negative")
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("default config should produce valid params: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := []byte("count: 7\nphysics:\n  theta: 0.9\n  restitution: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Count != 7 {
		t.Errorf("expected count 7, got %d", cfg.Count)
	}
	if cfg.Physics.Theta != 0.9 {
		t.Errorf("expected theta 0.9, got %f", cfg.Physics.Theta)
	}
	// Unspecified fields keep defaults.
	if cfg.Physics.Softening != DefaultSoftening {
		t.Errorf("expected default softening, got %f", cfg.Physics.Softening)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.Count = 33
	cfg.Physics.G = 2.5

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Count != 33 || loaded.Physics.G != 2.5 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected binary preset")
	}
	if cfg.Count != 2 {
		t.Errorf("expected 2 bodies, got %d", cfg.Count)
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("preset should produce valid params: %v", err)
	}

	// Returned copy must not alias the table.
	cfg.Count = 999
	if Presets["binary"].Count == 999 {
		t.Error("preset mutation leaked into shared table")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Params().Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
		if cfg.Count <= 0 || cfg.Mass <= 0 || cfg.Radius < 0 {
			t.Errorf("preset %q has bad particle settings", name)
		}
	}
}
