// Package storage persists simulation runs: metadata as JSON, per-step
// summaries as an append-only CSV log.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/gravbox/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Count      int                `json:"count"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Params     sim.Params         `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory containing metadata.json and
// steps.csv, one record per step in step order.
func (s *Store) Save(seed int64, count int, integrator string, params sim.Params, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Seed:       seed,
		Count:      count,
		Steps:      result.StepsTaken,
		Integrator: integrator,
		Params:     params,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	stepsFile, err := os.Create(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		return "", err
	}
	defer stepsFile.Close()

	if err := gocsv.Marshal(result.Records, stepsFile); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]sim.StepRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []sim.StepRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, err
	}
	return records, nil
}
