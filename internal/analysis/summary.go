// Package analysis computes post-run statistics from step logs.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gravbox/internal/sim"
)

var ErrNoRecords = errors.New("analysis: no records")

// Summary aggregates a run's step records.
type Summary struct {
	Steps            int
	Duration         float64
	MeanKinetic      float64
	StdKinetic       float64
	EnergyDrift      float64 // relative deviation of final from initial KE
	MomentumResidual float64 // max deviation of |p| from its initial value
	MeanDt           float64
}

func Summarize(records []sim.StepRecord) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	ke := make([]float64, len(records))
	dt := make([]float64, len(records))
	for i, r := range records {
		ke[i] = r.KineticEnergy
		dt[i] = r.Dt
	}

	mean, std := stat.MeanStdDev(ke, nil)
	if len(records) == 1 {
		std = 0
	}

	s := &Summary{
		Steps:       len(records),
		Duration:    records[len(records)-1].Time,
		MeanKinetic: mean,
		StdKinetic:  std,
		MeanDt:      stat.Mean(dt, nil),
	}

	initial := ke[0]
	if initial != 0 {
		s.EnergyDrift = math.Abs(ke[len(ke)-1]-initial) / math.Abs(initial)
	}

	p0 := math.Hypot(records[0].MomentumX, records[0].MomentumY)
	for _, r := range records {
		if d := math.Abs(math.Hypot(r.MomentumX, r.MomentumY) - p0); d > s.MomentumResidual {
			s.MomentumResidual = d
		}
	}
	return s, nil
}

// Spectrum returns the one-sided power spectrum of the kinetic energy
// series and the index of the dominant non-DC bin. Useful for spotting
// oscillation periods in bound systems like the binary preset.
func Spectrum(records []sim.StepRecord) ([]float64, int, error) {
	if len(records) < 4 {
		return nil, 0, ErrNoRecords
	}

	ke := make([]float64, len(records))
	for i, r := range records {
		ke[i] = r.KineticEnergy
	}
	// Remove the mean so the DC bin does not swamp the plot.
	mean := stat.Mean(ke, nil)
	for i := range ke {
		ke[i] -= mean
	}

	coeffs := fft.FFTReal(ke)
	power := make([]float64, len(coeffs)/2)
	for i := range power {
		power[i] = cmplx.Abs(coeffs[i])
	}

	dominant := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[dominant] {
			dominant = i
		}
	}
	return power, dominant, nil
}
