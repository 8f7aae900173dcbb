package sim

import "github.com/san-kum/gravbox/internal/body"

// Snapshot is the fully-settled post-step state handed to external
// collaborators. The particle slice is a deep copy; readers never see
// mid-step state and cannot mutate the simulation through it.
type Snapshot struct {
	Particles []body.Particle
	Time      float64
	Dt        float64
	Step      int
}

// StepRecord is the per-step summary appended to the run log, one
// record per completed step in step order.
type StepRecord struct {
	Step          int     `csv:"step"`
	Time          float64 `csv:"time"`
	Dt            float64 `csv:"dt"`
	KineticEnergy float64 `csv:"kinetic_energy"`
	MomentumX     float64 `csv:"momentum_x"`
	MomentumY     float64 `csv:"momentum_y"`
	Count         int     `csv:"particle_count"`
}

// Record derives the per-step summary from a snapshot.
func (s Snapshot) Record() StepRecord {
	rec := StepRecord{Step: s.Step, Time: s.Time, Dt: s.Dt, Count: len(s.Particles)}
	for i := range s.Particles {
		rec.KineticEnergy += s.Particles[i].KineticEnergy()
		p := s.Particles[i].Momentum()
		rec.MomentumX += p.X
		rec.MomentumY += p.Y
	}
	return rec
}

// Metric aggregates a scalar over a run from per-step summaries.
type Metric interface {
	Name() string
	Observe(rec StepRecord)
	Value() float64
	Reset()
}

// Observer is notified with a snapshot after every completed step.
// Renderers and loggers hang off this.
type Observer interface {
	OnStep(snap Snapshot)
}

// Result summarizes a completed Run.
type Result struct {
	Records     []StepRecord
	Metrics     map[string]float64
	StepsTaken  int
	EnergyDrift float64
}
