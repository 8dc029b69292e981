package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/sim"
	"github.com/san-kum/activeflow/internal/store"
	"github.com/san-kum/activeflow/internal/stepper"
	"github.com/san-kum/activeflow/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	scheme     string
	length     float64
	points     int
	courant    float64
	tau        float64
	iterations int
	warmup     int
	seed       int64
	kMin       float64
	kMax       float64
	v0         float64
	vRatio     float64
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "activeflow",
		Short: "2d pseudo-spectral active turbulence solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".activeflow", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's convergence monitor",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and monitoring table as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the stepping schemes",
		RunE:  benchSchemes,
	}
	benchCmd.Flags().IntVar(&points, "points", 64, "collocation points per axis")
	benchCmd.Flags().IntVar(&iterations, "iterations", 200, "iterations per scheme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live vorticity view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, benchCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
	cmd.Flags().StringVar(&scheme, "scheme", stepper.SchemeIMEXRK3, "time stepping scheme")
	cmd.Flags().Float64Var(&length, "length", 0, "domain side length")
	cmd.Flags().IntVar(&points, "points", 0, "collocation points per axis")
	cmd.Flags().Float64Var(&courant, "courant", 0, "courant number")
	cmd.Flags().Float64Var(&tau, "tau", 0, "initial time step")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "iteration count")
	cmd.Flags().IntVar(&warmup, "warmup", 0, "cfl warm-up iterations")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time-derived)")
	cmd.Flags().Float64Var(&kMin, "kmin", 0, "injection band lower edge")
	cmd.Flags().Float64Var(&kMax, "kmax", 0, "injection band upper edge")
	cmd.Flags().Float64Var(&v0, "v0", 0, "base viscosity")
	cmd.Flags().Float64Var(&vRatio, "vratio", 0, "injection viscosity ratio")
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("length") {
		cfg.DomainLength = length
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("courant") {
		cfg.Courant = courant
	}
	if flags.Changed("tau") {
		cfg.Tau = tau
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("warmup") {
		cfg.Warmup = warmup
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("kmin") {
		cfg.Physical.KMin = kMin
	}
	if flags.Changed("kmax") {
		cfg.Physical.KMax = kMax
	}
	if flags.Changed("v0") {
		cfg.Physical.V0 = v0
	}
	if flags.Changed("vratio") {
		cfg.Physical.VRatio = vRatio
	}

	return cfg, cfg.Validate()
}

// progressPrinter writes the convergence monitor to stdout in the classic
// fixed-width format.
type progressPrinter struct{}

func (progressPrinter) OnMonitor(rec sim.MonitorRecord, _ [][]float64) {
	fmt.Printf("iteration = %07d\ttau = %.4f\tE(k=1) = %.12e\tU_max = %.6f\n",
		rec.Iteration, rec.Tau, rec.EnergyK1, rec.MaxSpeed)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := sim.NewExperiment(cfg)
	if err != nil {
		return err
	}
	if !quiet {
		exp.Driver.AddObserver(progressPrinter{})
	}

	fmt.Printf("running %s on %dx%d, L=%.4f...\n", cfg.Scheme, cfg.Points, cfg.Points, cfg.DomainLength)
	start := time.Now()

	result, runErr := exp.Run(context.Background())
	elapsed := time.Since(start)

	if result != nil {
		runID, err := st.Save(cfg, exp.Ops.Grid, result)
		if err != nil {
			return err
		}
		fmt.Printf("completed in %v\n", elapsed)
		fmt.Printf("run id: %s\n", runID)
		fmt.Printf("steps: %d  final time: %.6f  snapshots: %d\n",
			result.Steps, result.FinalTime, len(result.Snapshots))
	}

	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tTIME\tGRID\tL\tITERS\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.3f\t%d\t%d\n",
			run.ID,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points, run.Points,
			run.DomainLength,
			run.Iterations,
			run.Snapshots,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	monitor, err := st.LoadMonitor(runID)
	if err != nil {
		return err
	}
	if len(monitor) == 0 {
		return fmt.Errorf("no monitoring data for %s", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scheme: %s  grid: %dx%d  L=%.4f\n\n", meta.Scheme, meta.Points, meta.Points, meta.DomainLength)

	series := []struct {
		caption string
		value   func(sim.MonitorRecord) float64
	}{
		{"E(k=1) vs iteration", func(r sim.MonitorRecord) float64 { return r.EnergyK1 }},
		{"max velocity vs iteration", func(r sim.MonitorRecord) float64 { return r.MaxSpeed }},
		{"tau vs iteration", func(r sim.MonitorRecord) float64 { return r.Tau }},
	}

	for _, s := range series {
		data := make([]float64, len(monitor))
		for i, rec := range monitor {
			data[i] = s.value(rec)
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

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	monitor, err := st.LoadMonitor(runID)
	if err != nil {
		return err
	}

	out := struct {
		Meta    *store.RunMetadata  `json:"metadata"`
		Monitor []sim.MonitorRecord `json:"monitor"`
	}{meta, monitor}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func benchSchemes(cmd *cobra.Command, args []string) error {
	fmt.Printf("benchmarking %dx%d, %d iterations per scheme\n\n", points, points, iterations)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range stepper.Names() {
		cfg := config.DefaultConfig()
		cfg.Scheme = name
		cfg.Points = points
		cfg.Iterations = iterations
		cfg.Seed = 42

		exp, err := sim.NewExperiment(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t%v\t(%v)\n", name, elapsed, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n",
			name, result.Steps, elapsed, float64(result.Steps)/elapsed.Seconds())
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return tui.RunLive(cfg)
}
