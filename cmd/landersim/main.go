package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avellar/landersim/internal/analysis"
	"github.com/avellar/landersim/internal/config"
	"github.com/avellar/landersim/internal/dynamics"
	"github.com/avellar/landersim/internal/export"
	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/metrics"
	"github.com/avellar/landersim/internal/scenario"
	"github.com/avellar/landersim/internal/sim"
	"github.com/avellar/landersim/internal/storage"
	"github.com/avellar/landersim/internal/tui"
	"github.com/avellar/landersim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	configFile string
	preset     string
	watch      bool
	jsonOut    bool
	outPath    string
	svgPath    string
	csvPath    string
	frameRate  int
	speed      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "landersim",
		Short: "Mars lander descent and orbit simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario to completion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (verlet|euler)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&watch, "watch", false, "render the run live in the terminal")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full run as JSON instead of storing it")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "fly a scenario in the interactive dashboard",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (verlet|euler)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&speed, "speed", 10, "simulation ticks per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "also write the trajectory as SVG")
	exportCmd.Flags().StringVar(&csvPath, "csv", "", "also write the raw state table as CSV")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list the scenario presets",
		RunE:  showScenarios,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run every scenario and summarize the outcomes",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", 4000, "duration per scenario (s)")
	sweepCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (verlet|euler)")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "compare verlet and euler on the same scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	compareCmd.Flags().Float64Var(&duration, "time", 4000, "duration (s)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, scenariosCmd, sweepCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseScenario accepts a numeric id or a preset name.
func parseScenario(arg string) (scenario.Scenario, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		id := scenario.Scenario(n)
		if _, err := scenario.Get(id); err != nil {
			return 0, err
		}
		return id, nil
	}
	for i, p := range scenario.List() {
		if strings.EqualFold(p.Name, arg) {
			return scenario.Scenario(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", lander.ErrUnknownScenario, arg)
}

func newStepper(name string) (dynamics.Stepper, error) {
	switch name {
	case "verlet":
		return dynamics.NewVerlet(), nil
	case "euler":
		return dynamics.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// viewMode picks the live view: descents track altitude, everything else is
// drawn as an orbit.
func viewMode(id scenario.Scenario) string {
	p, err := scenario.Get(id)
	if err == nil && p.Autopilot {
		return "descent"
	}
	return "orbit"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and file values.
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}

	id := scenario.Scenario(cfg.Scenario)
	if len(args) == 1 {
		parsed, err := parseScenario(args[0])
		if err != nil {
			return err
		}
		id = parsed
	} else if preset == "" && configFile == "" {
		return fmt.Errorf("specify a scenario, --preset or --config")
	}

	stepper, err := newStepper(cfg.Integrator)
	if err != nil {
		return err
	}

	env := lander.MarsEnvironment{}
	s, err := sim.New(id, env, stepper)
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	if watch {
		r := tui.NewLiveRenderer(viewMode(id), id.String(), frameRate)
		r.Start()
		defer r.Stop()
		s.AddObserver(r)
	}

	start := time.Now()
	result, err := s.Run(context.Background(), sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if jsonOut {
		return storage.ExportJSONStdout(int(id), id.String(), cfg.Integrator, cfg.Dt, cfg.Duration, result)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(int(id), id.String(), cfg.Dt, cfg.Duration, cfg.Integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%s)\n", id, viewMode(id))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("outcome: %s\n", result.Outcome)
	if result.Outcome != sim.Flying {
		fmt.Printf("impact speed: %.2f m/s\n", result.ImpactSpeed)
	}

	if viewMode(id) == "orbit" {
		aps := analysis.FindApsides(result.Samples)
		fmt.Printf("periapsis: %.0f m  apoapsis: %.0f m\n", aps.Periapsis, aps.Apoapsis)
		fmt.Printf("radius drift: %.3e  energy drift: %.3e\n",
			analysis.RadiusDrift(result.Samples), analysis.EnergyDrift(result.Samples))
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	id, err := parseScenario(args[0])
	if err != nil {
		return err
	}
	stepper, err := newStepper(integrator)
	if err != nil {
		return err
	}

	s, err := sim.New(id, lander.MarsEnvironment{}, stepper)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dt") {
		s.Craft().Dt = dt
	}
	return viz.Run(s, id.String(), duration, frameRate, speed)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDT\tINTEG\tOUTCOME\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3fs\t%s\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Integrator,
			run.Outcome,
			run.Ticks,
		)
	}
	return w.Flush()
}

// plotted columns, by storage column name.
var plotColumns = []string{"altitude", "vradial", "throttle", "fuel"}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s  outcome: %s\n", meta.Name, meta.Outcome)
	fmt.Printf("samples: %d\n\n", len(states))

	colIdx := make(map[string]int)
	for i, name := range storage.Columns() {
		colIdx[name] = i
	}

	for _, name := range plotColumns {
		idx, ok := colIdx[name]
		if !ok {
			continue
		}
		data := make([]float64, len(states))
		for i := range states {
			if idx < len(states[i]) {
				data[i] = states[i][idx]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if svgPath != "" {
		samples, err := st.LoadSamples(args[0])
		if err != nil {
			return err
		}
		svg := export.TrajectorySVG(samples, 800, 800, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", svgPath)
	}

	if csvPath != "" {
		if err := st.CopyStates(args[0], csvPath); err != nil {
			return err
		}
		fmt.Printf("state table written to %s\n", csvPath)
	}

	if outPath == "" {
		return storage.ExportStored(st, args[0], os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.ExportStored(st, args[0], f); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func showScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTOPILOT\tSTABILIZED\tDT\tDESCRIPTION")
	for i, p := range scenario.List() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%.2fs\t%s\n",
			i, p.Name, p.Autopilot, p.Stabilized, p.Dt, p.Description)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	ids := make([]scenario.Scenario, scenario.Count())
	for i := range ids {
		ids[i] = scenario.Scenario(i)
	}

	newStep := func() dynamics.Stepper { return dynamics.NewVerlet() }
	if integrator == "euler" {
		newStep = func() dynamics.Stepper { return dynamics.NewEuler() }
	}

	ens := sim.NewEnsemble(lander.MarsEnvironment{}, newStep, metrics.Default)
	results, err := ens.Run(context.Background(), ids, sim.Config{
		Duration:      duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tOUTCOME\tTICKS\tFINAL ALT\tIMPACT")
	for i, res := range results {
		final := res.Final()
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.0fm\t%.2fm/s\n",
			i, ids[i], res.Outcome, res.Ticks, final.Altitude, res.ImpactSpeed)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	id, err := parseScenario(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tOUTCOME\tFINAL ALT\tRADIUS DRIFT\tENERGY DRIFT")

	for _, name := range []string{"verlet", "euler"} {
		stepper, err := newStepper(name)
		if err != nil {
			return err
		}
		s, err := sim.New(id, lander.MarsEnvironment{}, stepper)
		if err != nil {
			return err
		}
		res, err := s.Run(context.Background(), sim.Config{
			Dt:            dt,
			Duration:      duration,
			ValidateState: true,
		})
		if err != nil {
			return err
		}
		final := res.Final()
		fmt.Fprintf(w, "%s\t%s\t%.0fm\t%.3e\t%.3e\n",
			name, res.Outcome, final.Altitude,
			analysis.RadiusDrift(res.Samples), analysis.EnergyDrift(res.Samples))
	}
	return w.Flush()
}
