// Package metrics provides run-level aggregates computed from per-step
// summaries.
package metrics

import (
	"math"

	"github.com/san-kum/gravbox/internal/sim"
)

// KineticEnergy reports the mean total kinetic energy over a run.
type KineticEnergy struct {
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(rec sim.StepRecord) {
	k.total += rec.KineticEnergy
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Momentum reports the magnitude of total momentum at the last
// observed step. For a closed system this should stay at its initial
// value; walls exchange momentum with the world and move it.
type Momentum struct {
	last float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(rec sim.StepRecord) {
	m.last = math.Hypot(rec.MomentumX, rec.MomentumY)
}

func (m *Momentum) Value() float64 { return m.last }

func (m *Momentum) Reset() { m.last = 0 }

// EnergyDrift tracks the maximum relative deviation of kinetic energy
// from its first observation. Restitution below 1 makes drift
// expected; with everything elastic it measures integration error.
type EnergyDrift struct {
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(rec sim.StepRecord) {
	if e.samples == 0 {
		e.initial = rec.KineticEnergy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(rec.KineticEnergy-e.initial) / math.Abs(e.initial)
		if drift > e.max {
			e.max = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}
