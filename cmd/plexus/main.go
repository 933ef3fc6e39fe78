package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/san-kum/plexus/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      float64
	height     float64
	density    int
	dt         float64
	duration   float64
	seed       int64
	numRuns    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plexus",
		Short: "animated particle field with proximity links",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the GUI window when no command given
			if err := runGUI(cmd, args); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plexus", "data directory")
	addFieldFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "viewport width")
		cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "viewport height")
		cmd.Flags().IntVar(&density, "density", config.DefaultDensity, "particle density")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
		cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and store the result",
		RunE:  runField,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 600, "duration in ticks")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field with a terminal visualization",
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		RunE:  runGUI,
	}
	addFieldFlags(guiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run seeded replicas in parallel and compare metrics",
		RunE:  benchField,
	}
	addFieldFlags(benchCmd)
	benchCmd.Flags().Float64Var(&duration, "time", 600, "duration in ticks")
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of replicas")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's average speed",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run's last frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, benchCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: preset, then config
// file, then explicit CLI flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("density") {
		cfg.Density = density
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildField(cfg *config.Config, seed int64) (*field.Field, error) {
	opts, err := cfg.FieldOptions()
	if err != nil {
		return nil, err
	}
	f, err := field.New(opts, cfg.Bounds(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	f.Populate()
	return f, nil
}

func resolveSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runSeed := resolveSeed(cfg)
	f, err := buildField(cfg, runSeed)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(f)
	runner.AddMetric(metrics.NewAvgSpeed())
	runner.AddMetric(metrics.NewLinks())
	runner.AddMetric(metrics.NewEscaped())

	fmt.Printf("running field with %d particles...\n", len(f.Particles))
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Seed:      runSeed,
		Dt:        cfg.Dt,
		Duration:  duration,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Particles: len(f.Particles),
		Preset:    preset,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := buildField(cfg, resolveSeed(cfg))
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(f, cfg.Dt))
	_, err = p.Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := buildField(cfg, resolveSeed(cfg))
	if err != nil {
		return err
	}

	background, err := config.ParseColor(cfg.Background)
	if err != nil {
		return err
	}

	gui.Run(f, cfg.Dt, background)
	return nil
}

func benchField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	build := func(seed int64) (*sim.Runner, error) {
		f, err := buildField(cfg, seed)
		if err != nil {
			return nil, err
		}
		runner := sim.NewRunner(f)
		runner.AddMetric(metrics.NewAvgSpeed())
		runner.AddMetric(metrics.NewLinks())
		runner.AddMetric(metrics.NewEscaped())
		return runner, nil
	}

	seedStart := resolveSeed(cfg)
	ensemble := sim.NewEnsemble(build, numRuns, seedStart)

	fmt.Printf("running %d replicas...\n\n", numRuns)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tAVG_SPEED\tLINKS\tESCAPED")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.2f\t%.0f\n",
			seedStart+int64(i),
			res.Steps,
			res.Metrics["avg_speed"],
			res.Metrics["links"],
			res.Metrics["escaped"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tPARTICLES\tPRESET")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.2f\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Particles,
			run.Preset,
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

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(frames))

	// Mean per-particle displacement between consecutive frames,
	// which at fixed dt reads as average speed.
	data := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		if len(frames[i]) == 0 {
			data = append(data, 0)
			continue
		}
		total := 0.0
		for j := range frames[i] {
			if j < len(frames[i-1]) {
				total += frames[i][j].Distance(frames[i-1][j])
			}
		}
		data = append(data, total/float64(len(frames[i])))
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean displacement per tick"),
	)
	fmt.Println(graph)

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

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Print("time")
	for i := range frames[0] {
		fmt.Printf(",p%dx,p%dy", i, i)
	}
	fmt.Println()

	for i := range frames {
		fmt.Printf("%.6f", times[i])
		for _, pos := range frames[i] {
			fmt.Printf(",%.6f,%.6f", pos.X, pos.Y)
		}
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	// Rebuild a display-only field holding the run's final frame.
	cfg := config.Default()
	cfg.Width = meta.Width
	cfg.Height = meta.Height
	if meta.Preset != "" {
		if p := config.GetPreset(meta.Preset); p != nil {
			cfg = p
			cfg.Width = meta.Width
			cfg.Height = meta.Height
		}
	}

	opts, err := cfg.FieldOptions()
	if err != nil {
		return err
	}
	f, err := field.New(opts, cfg.Bounds(), rand.New(rand.NewSource(1)))
	if err != nil {
		return err
	}

	last := frames[len(frames)-1]
	f.Particles = make([]field.Particle, len(last))
	for i, pos := range last {
		f.Particles[i] = field.Particle{Pos: pos, MaxSpeed: opts.MaxSpeed}
	}

	background, err := config.ParseColor(cfg.Background)
	if err != nil {
		return err
	}

	fmt.Println(export.FrameSVG(f, background))
	return nil
}
