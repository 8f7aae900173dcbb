package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/integrate"
)

// Ensemble runs independent simulations from the same initial state in
// parallel. Each run owns its own particle buffer and tree, so runs
// never share mutable state; with identical inputs all results must be
// identical, which is how the determinism property is exercised.
type Ensemble struct {
	initial []body.Particle
	params  Params
	stepper string
	runs    int
}

func NewEnsemble(initial []body.Particle, params Params, stepper string, runs int) *Ensemble {
	return &Ensemble{initial: initial, params: params, stepper: stepper, runs: runs}
}

func (e *Ensemble) Run(ctx context.Context, steps int) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := New(e.initial, e.params, integrate.New(e.stepper))
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, steps)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
