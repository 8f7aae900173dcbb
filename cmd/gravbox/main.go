package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravbox/internal/analysis"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/export"
	"github.com/san-kum/gravbox/internal/geom"
	"github.com/san-kum/gravbox/internal/integrate"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/sim"
	"github.com/san-kum/gravbox/internal/storage"
	"github.com/san-kum/gravbox/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	bodies      int
	mass        float64
	radius      float64
	seed        int64
	steps       int
	integrator  string
	theta       float64
	gravConst   float64
	restitution float64

	logPath   string
	outPath   string
	trailStep int
	runs      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravbox",
		Short: "gravitational n-body sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command given
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravbox", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&logPath, "log", "", "append per-step CSV log to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	trailCmd := &cobra.Command{
		Use:   "trail",
		Short: "simulate and export particle trails as SVG",
		RunE:  exportTrails,
	}
	addConfigFlags(trailCmd)
	trailCmd.Flags().StringVar(&outPath, "out", "trails.svg", "output file")
	trailCmd.Flags().IntVar(&trailStep, "every", 10, "record every nth step")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tree accuracy/speed trade-off",
		RunE:  benchSweep,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "run parallel identical simulations and check determinism",
		RunE:  verifyDeterminism,
	}
	addConfigFlags(verifyCmd)
	verifyCmd.Flags().IntVar(&runs, "runs", 4, "parallel runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, trailCmd, benchCmd, verifyCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultCount, "number of particles")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "particle radius")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringVar(&integrator, "integrator", "semi-implicit", "integrator (semi-implicit, leapfrog)")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "tree opening angle (0 = exact)")
	cmd.Flags().Float64Var(&gravConst, "g", 1.0, "gravitational constant")
	cmd.Flags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "collision restitution")
}

// buildConfig layers defaults, preset, config file and explicit flags,
// in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("bodies") {
		cfg.Count = bodies
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("theta") {
		cfg.Physics.Theta = theta
	}
	if cmd.Flags().Changed("g") {
		cfg.Physics.G = gravConst
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Physics.Restitution = restitution
	}
	return cfg, nil
}

func newSimulation(cfg *config.Config) (*sim.Simulation, error) {
	params := cfg.Params()
	particles := sim.Spawn(cfg.Count, cfg.Seed, cfg.Mass, cfg.Radius, params.Bounds)
	return sim.New(particles, params, integrate.New(cfg.Integrator))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(metrics.NewMomentum())
	s.AddMetric(metrics.NewEnergyDrift())

	var logger *storage.StepLogger
	if logPath != "" {
		logger, err = storage.NewStepLogger(logPath)
		if err != nil {
			return err
		}
		defer logger.Close()
		s.AddObserver(logger)
	}

	fmt.Printf("running %d bodies for %d steps (seed %d)...\n", cfg.Count, cfg.Steps, cfg.Seed)
	start := time.Now()

	result, err := s.Run(context.Background(), cfg.Steps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Seed, cfg.Count, cfg.Integrator, cfg.Params(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%.0f steps/sec)\n", elapsed, float64(result.StepsTaken)/elapsed.Seconds())
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("simulated time: %.3fs\n", s.Time())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	if logger != nil {
		return logger.Err()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	return viz.Run(s)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	list, err := st.List()
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tSTEPS\tINTEG\tSEED")
	for _, run := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Steps,
			run.Integrator,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(r sim.StepRecord) float64
	}{
		{"kinetic energy", func(r sim.StepRecord) float64 { return r.KineticEnergy }},
		{"|momentum|", func(r sim.StepRecord) float64 { return math.Hypot(r.MomentumX, r.MomentumY) }},
		{"dt", func(r sim.StepRecord) float64 { return r.Dt }},
		{"particle count", func(r sim.StepRecord) float64 { return float64(r.Count) }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	records, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(records)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", summary.Steps)
	fmt.Fprintf(w, "duration\t%.3fs\n", summary.Duration)
	fmt.Fprintf(w, "mean dt\t%.2e\n", summary.MeanDt)
	fmt.Fprintf(w, "mean KE\t%.6f\n", summary.MeanKinetic)
	fmt.Fprintf(w, "std KE\t%.6f\n", summary.StdKinetic)
	fmt.Fprintf(w, "energy drift\t%.2e\n", summary.EnergyDrift)
	fmt.Fprintf(w, "momentum residual\t%.2e\n", summary.MomentumResidual)
	if err := w.Flush(); err != nil {
		return err
	}

	power, dominant, err := analysis.Spectrum(records)
	if err != nil {
		return nil // too short for a spectrum; summary alone is fine
	}

	plotData := power[:len(power)/2]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy power spectrum"),
	)
	fmt.Println()
	fmt.Println(graph)

	if summary.Duration > 0 {
		freq := float64(dominant) / summary.Duration
		fmt.Printf("\ndominant frequency: %.3f hz (period %.3fs)\n", freq, 1/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// trailRecorder collects per-particle positions every nth step.
type trailRecorder struct {
	every  int
	order  []int
	trails map[int][]geom.Vec2
}

func (t *trailRecorder) OnStep(snap sim.Snapshot) {
	if snap.Step%t.every != 0 {
		return
	}
	for i := range snap.Particles {
		p := &snap.Particles[i]
		if _, seen := t.trails[p.ID]; !seen {
			t.order = append(t.order, p.ID)
		}
		t.trails[p.ID] = append(t.trails[p.ID], p.Pos)
	}
}

func exportTrails(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	if trailStep < 1 {
		trailStep = 1
	}
	rec := &trailRecorder{every: trailStep, trails: make(map[int][]geom.Vec2)}
	s.AddObserver(rec)

	if _, err := s.Run(context.Background(), cfg.Steps); err != nil {
		return err
	}

	trails := make([]export.Trail, 0, len(rec.order))
	for i, id := range rec.order {
		hue := 360 * float64(i) / float64(len(rec.order))
		trails = append(trails, export.Trail{
			Points: rec.trails[id],
			Color:  colorful.Hsv(hue, 0.8, 0.9).Hex(),
		})
	}

	svg := export.TrailsToSVG(trails, cfg.Params().Bounds, 1000, 1000)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d trails to %s\n", len(trails), outPath)
	return nil
}

func benchSweep(cmd *cobra.Command, args []string) error {
	counts := []int{50, 200, 800}
	thetas := []float64{0.9, 0.5, 0.0}
	const benchSteps = 200

	fmt.Println("benchmarking tree accuracy/speed trade-off")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tTHETA\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, th := range thetas {
			params := sim.DefaultParams()
			params.Theta = th

			particles := sim.Spawn(n, 42, 1.0, 0.2, params.Bounds)
			s, err := sim.New(particles, params, integrate.NewSemiImplicit())
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(context.Background(), benchSteps)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.1f\t%d\t%v\t%.0f\n",
				n, th, result.StepsTaken, elapsed.Round(time.Millisecond),
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func verifyDeterminism(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.Params()
	initial := sim.Spawn(cfg.Count, cfg.Seed, cfg.Mass, cfg.Radius, params.Bounds)

	ensemble := sim.NewEnsemble(initial, params, cfg.Integrator, runs)

	fmt.Printf("running %d identical simulations of %d bodies for %d steps...\n", runs, cfg.Count, cfg.Steps)
	results, err := ensemble.Run(context.Background(), cfg.Steps)
	if err != nil {
		return err
	}

	ref := results[0].Records
	for i := 1; i < len(results); i++ {
		for j, rec := range results[i].Records {
			if rec != ref[j] {
				return fmt.Errorf("run %d diverged from run 0 at step %d", i, rec.Step)
			}
		}
	}
	fmt.Println("all runs produced bit-identical step records")
	return nil
}
