package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/avellar/landersim/internal/sim"
)

// ExportData is the flat JSON form of a recorded run.
type ExportData struct {
	Scenario    int                `json:"scenario"`
	Name        string             `json:"name"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Outcome     string             `json:"outcome"`
	ImpactSpeed float64            `json:"impact_speed"`
	Ticks       int                `json:"ticks"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

func exportData(scenarioID int, name, integrator string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Scenario:    scenarioID,
		Name:        name,
		Integrator:  integrator,
		Dt:          dt,
		Duration:    duration,
		Outcome:     result.Outcome.String(),
		ImpactSpeed: result.ImpactSpeed,
		Ticks:       result.Ticks,
		Times:       make([]float64, len(result.Samples)),
		States:      make([][]float64, len(result.Samples)),
		Metrics:     result.Metrics,
	}
	for i, smp := range result.Samples {
		data.Times[i] = smp.Time
		chute := 0.0
		if smp.Parachute != 0 {
			chute = 1.0
		}
		data.States[i] = []float64{
			smp.Position.X, smp.Position.Y, smp.Position.Z,
			smp.Velocity.X, smp.Velocity.Y, smp.Velocity.Z,
			smp.Altitude, smp.RadialVelocity, smp.Throttle, smp.Fuel, chute,
		}
	}
	return data
}

// ExportJSON writes a full run to path.
func ExportJSON(path string, scenarioID int, name, integrator string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, exportData(scenarioID, name, integrator, dt, duration, result))
}

// ExportJSONStdout writes a full run to standard output.
func ExportJSONStdout(scenarioID int, name, integrator string, dt, duration float64, result *sim.Result) error {
	return writeJSON(os.Stdout, exportData(scenarioID, name, integrator, dt, duration, result))
}

// ExportStored rebuilds the export form of a stored run from its metadata
// and CSV trajectory, and writes it to w.
func ExportStored(s *Store, runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return writeJSON(w, ExportData{
		Scenario:    meta.Scenario,
		Name:        meta.Name,
		Integrator:  meta.Integrator,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Outcome:     meta.Outcome,
		ImpactSpeed: meta.ImpactSpeed,
		Ticks:       meta.Ticks,
		Times:       times,
		States:      states,
		Metrics:     meta.Metrics,
	})
}

func writeJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
