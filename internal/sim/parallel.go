package sim

import (
	"context"
	"sync"

	"github.com/avellar/landersim/internal/dynamics"
	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/scenario"
)

// Ensemble runs several scenario presets concurrently, one simulator per
// goroutine. Each simulator owns its craft, stepper history and autopilot,
// so the per-tick loops stay strictly sequential and share nothing.
type Ensemble struct {
	env        lander.Environment
	newStepper func() dynamics.Stepper
	newMetrics func() []Metric
}

// NewEnsemble builds an ensemble. newStepper is called once per scenario so
// integrator history is never shared; newMetrics may be nil.
func NewEnsemble(env lander.Environment, newStepper func() dynamics.Stepper, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{env: env, newStepper: newStepper, newMetrics: newMetrics}
}

// Run simulates every id under the same config and returns results in input
// order. The first setup or run error wins.
func (e *Ensemble) Run(ctx context.Context, ids []scenario.Scenario, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(idx int, id scenario.Scenario) {
			defer wg.Done()

			s, err := New(id, e.env, e.newStepper())
			if err != nil {
				errs[idx] = err
				return
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
