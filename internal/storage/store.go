// Package storage persists simulation runs as a metadata.json plus a
// states.csv per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
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
	ID          string             `json:"id"`
	Scenario    int                `json:"scenario"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Outcome     string             `json:"outcome"`
	ImpactSpeed float64            `json:"impact_speed"`
	Ticks       int                `json:"ticks"`
	Metrics     map[string]float64 `json:"metrics"`
}

// csvHeader fixes the states.csv column layout; LoadStates depends on it.
var csvHeader = []string{
	"time", "px", "py", "pz", "vx", "vy", "vz",
	"altitude", "vradial", "throttle", "fuel", "parachute",
}

func sampleRow(smp sim.Sample) []string {
	chute := 0.0
	if smp.Parachute != 0 {
		chute = 1.0
	}
	vals := []float64{
		smp.Time,
		smp.Position.X, smp.Position.Y, smp.Position.Z,
		smp.Velocity.X, smp.Velocity.Y, smp.Velocity.Z,
		smp.Altitude, smp.RadialVelocity, smp.Throttle, smp.Fuel, chute,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

// Save writes one run directory and returns its id.
func (s *Store) Save(scenarioID int, name string, dt, duration float64, integrator string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenarioID,
		Name:        name,
		Timestamp:   time.Now(),
		Dt:          dt,
		Duration:    duration,
		Integrator:  integrator,
		Outcome:     result.Outcome.String(),
		ImpactSpeed: result.ImpactSpeed,
		Ticks:       result.Ticks,
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(sampleRow(smp)); err != nil {
			return "", err
		}
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
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

// LoadStates reads a run's trajectory back as raw rows in csvHeader order
// (minus the time column, returned separately).
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}

// LoadSamples rebuilds typed samples from a stored run.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(states))
	for i, row := range states {
		if len(row) < len(csvHeader)-1 {
			continue
		}
		smp := sim.Sample{
			Time:           times[i],
			Altitude:       row[6],
			RadialVelocity: row[7],
			Throttle:       row[8],
			Fuel:           row[9],
		}
		smp.Position.X, smp.Position.Y, smp.Position.Z = row[0], row[1], row[2]
		smp.Velocity.X, smp.Velocity.Y, smp.Velocity.Z = row[3], row[4], row[5]
		if row[10] != 0 {
			smp.Parachute = lander.Deployed
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

// CopyStates writes a run's raw state table to dst as CSV.
func (s *Store) CopyStates(runID, dst string) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// Columns exposes the state column names (after the time column) for plot
// captions.
func Columns() []string {
	return csvHeader[1:]
}
