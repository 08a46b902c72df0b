package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{
				Time:           0,
				Position:       r3.Vec{X: lander.MarsRadius + 10000},
				Altitude:       10000,
				RadialVelocity: 0,
				Fuel:           1.0,
			},
			{
				Time:           0.1,
				Position:       r3.Vec{X: lander.MarsRadius + 9999.98},
				Velocity:       r3.Vec{X: -0.371},
				Altitude:       9999.98,
				RadialVelocity: -0.371,
				Throttle:       0.5,
				Fuel:           0.99975,
				Parachute:      lander.Deployed,
			},
		},
		Metrics:     map[string]float64{"min_altitude": 9999.98},
		Outcome:     sim.Flying,
		ImpactSpeed: 0,
		Ticks:       1,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := s.Save(1, "descent-10km", 0.1, 600, "verlet", testResult())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "descent-10km_") {
		t.Errorf("run id = %q, want name prefix", runID)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scenario != 1 || meta.Integrator != "verlet" || meta.Ticks != 1 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Outcome != "flying" {
		t.Errorf("outcome = %q, want flying", meta.Outcome)
	}
	if meta.Metrics["min_altitude"] != 9999.98 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("List() = %+v", runs)
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("List() on a missing dir = %+v, want empty", runs)
	}
}

func TestLoadStates(t *testing.T) {
	s := New(t.TempDir())
	runID, err := s.Save(1, "run", 0.1, 600, "verlet", testResult())
	if err != nil {
		t.Fatal(err)
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("got %d states, %d times, want 2 each", len(states), len(times))
	}
	if times[1] != 0.1 {
		t.Errorf("times[1] = %v, want 0.1", times[1])
	}
	if len(states[0]) != len(Columns()) {
		t.Errorf("state width %d, want %d", len(states[0]), len(Columns()))
	}
}

func TestLoadSamples(t *testing.T) {
	s := New(t.TempDir())
	want := testResult()
	runID, err := s.Save(1, "run", 0.1, 600, "verlet", want)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := s.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != len(want.Samples) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want.Samples))
	}

	got := samples[1]
	ref := want.Samples[1]
	if math.Abs(got.Position.X-ref.Position.X) > 1e-5 {
		t.Errorf("position.X = %v, want %v", got.Position.X, ref.Position.X)
	}
	if math.Abs(got.RadialVelocity-ref.RadialVelocity) > 1e-5 {
		t.Errorf("vradial = %v, want %v", got.RadialVelocity, ref.RadialVelocity)
	}
	if got.Parachute != lander.Deployed {
		t.Error("parachute status lost in the round trip")
	}
	if samples[0].Parachute != lander.NotDeployed {
		t.Error("stowed parachute read back as deployed")
	}
}

func TestCopyStates(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	runID, err := s.Save(1, "run", 0.1, 600, "verlet", testResult())
	if err != nil {
		t.Fatal(err)
	}

	dst := dir + "/out.csv"
	if err := s.CopyStates(runID, dst); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.Join(append([]string{"time"}, Columns()...), ",")
	if !strings.HasPrefix(string(data), header+"\n") {
		t.Errorf("copied CSV does not start with the header %q", header)
	}
}

func TestExportStored(t *testing.T) {
	s := New(t.TempDir())
	runID, err := s.Save(1, "run", 0.1, 600, "verlet", testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportStored(s, runID, &buf); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Scenario != 1 || data.Name != "run" || data.Outcome != "flying" {
		t.Errorf("exported header = %+v", data)
	}
	if len(data.Times) != 2 || len(data.States) != 2 {
		t.Errorf("exported %d times, %d states, want 2 each", len(data.Times), len(data.States))
	}
}

func TestExportJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/run.json"
	if err := ExportJSON(path, 1, "run", "verlet", 0.1, 600, testResult()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.Ticks != 1 || len(data.States[1]) != 11 {
		t.Errorf("exported run = %+v", data)
	}
}
