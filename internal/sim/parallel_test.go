package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/avellar/landersim/internal/dynamics"
	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/scenario"
)

func TestEnsembleRunsInInputOrder(t *testing.T) {
	e := NewEnsemble(lander.MarsEnvironment{},
		func() dynamics.Stepper { return dynamics.NewVerlet() },
		func() []Metric { return []Metric{&countingMetric{}} })

	ids := []scenario.Scenario{
		scenario.DecayingOrbit,
		scenario.CircularOrbit,
		scenario.EllipticalPolarOrbit,
	}
	results, err := e.Run(context.Background(), ids, Config{Duration: 5, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(ids) {
		t.Fatalf("got %d results for %d scenarios", len(results), len(ids))
	}

	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
		// 5 s at dt 0.1 plus the initial sample; none of these touch down.
		if len(res.Samples) != 51 {
			t.Errorf("result %d: %d samples, want 51", i, len(res.Samples))
		}
		if res.Metrics["count"] != 51 {
			t.Errorf("result %d: metric count = %v, want 51", i, res.Metrics["count"])
		}
	}

	// Results line up with the requested ids, not completion order.
	if results[1].Final().Altitude < 0.19*lander.MarsRadius {
		t.Errorf("result 1 altitude = %v, not the circular orbit", results[1].Final().Altitude)
	}
}

func TestEnsemblePropagatesSetupErrors(t *testing.T) {
	e := NewEnsemble(lander.MarsEnvironment{},
		func() dynamics.Stepper { return dynamics.NewVerlet() }, nil)

	ids := []scenario.Scenario{scenario.CircularOrbit, scenario.Scenario(99)}
	results, err := e.Run(context.Background(), ids, Config{Duration: 1})
	if !errors.Is(err, lander.ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
	if results[0] == nil {
		t.Error("valid scenario's result discarded on sibling failure")
	}
}
