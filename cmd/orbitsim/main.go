package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/compute"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/force"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

var (
	dataDir     string
	workers     int
	configFile  string
	preset      string
	numBodies   int
	ticks       int
	seed        int64
	law         string
	collision   string
	interaction string
	timeScale   float64
	runs        int
	sampleEvery int
	speedLimit  float64
	watch       bool
	snapshotDir string
	svgOut      string
	jsonOut     string
	benchTicks  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "2-d orbit simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if workers > 0 {
				compute.SetBackend(compute.NewCPUBackendWorkers(workers))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(snapshotDir)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "force worker count (0 = all cpus)")
	rootCmd.Flags().StringVar(&snapshotDir, "snapshots", ".", "directory for svg snapshots")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&runs, "runs", 1, "ensemble size; seeds count up from --seed")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 10, "record stats every n ticks")
	runCmd.Flags().Float64Var(&speedLimit, "speed-limit", 1000, "speed counted as unstable")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation in the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().BoolVar(&watch, "watch", false, "reload physics when the config file changes")
	liveCmd.Flags().StringVar(&snapshotDir, "snapshots", ".", "directory for svg snapshots")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the kinetic energy series as svg")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final scene of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare scalar and parallel force models",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&numBodies, "bodies", 2000, "number of bodies")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 20, "ticks per model")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&law, "law", "", "force law")
	cmd.Flags().StringVar(&collision, "collision", "", "collision policy (none, merge, bounce)")
	cmd.Flags().StringVar(&interaction, "interaction", "", "interaction mode (all, parent)")
	cmd.Flags().Float64Var(&timeScale, "time-scale", 0, "time scale per tick")
}

// loadConfig layers the config file, the preset and then explicit flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scenario))
		}
		p.View = cfg.View
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Bodies = numBodies
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("law") {
		cfg.Physics.Law = law
	}
	if flags.Changed("collision") {
		cfg.Physics.Collision = collision
	}
	if flags.Changed("interaction") {
		cfg.Physics.Interaction = interaction
	}
	if flags.Changed("time-scale") {
		cfg.Physics.TimeScale = timeScale
	}

	if _, err := cfg.Physics.EngineParams(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	params, err := cfg.Physics.EngineParams()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := sim.Config{
		Ticks:         cfg.Ticks,
		Params:        params,
		SampleEvery:   sampleEvery,
		Focus:         -1,
		ValidateState: true,
		Seed:          cfg.Seed,
	}

	fmt.Printf("running %s with %d bodies for %d ticks...\n", cfg.Scenario, cfg.Bodies, cfg.Ticks)
	start := time.Now()

	var results []*sim.Result
	if runs > 1 {
		ens := sim.NewEnsemble(runs, cfg.Seed, func() []sim.Metric { return metrics.Standard(speedLimit) })
		results, err = ens.Run(context.Background(), func(s int64) (body.Scene, error) {
			c := *cfg
			c.Seed = s
			return c.World()
		}, simCfg)
	} else {
		var world *body.World
		if world, err = cfg.World(); err != nil {
			return err
		}
		s := sim.New(engine.New(nil, cfg.Seed))
		for _, m := range metrics.Standard(speedLimit) {
			s.AddMetric(m)
		}
		var res *sim.Result
		res, err = s.Run(context.Background(), world, simCfg)
		results = []*sim.Result{res}
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	for i, res := range results {
		c := *cfg
		c.Seed = cfg.Seed + int64(i)
		runID, err := st.Save(&c, res)
		if err != nil {
			return err
		}
		printResult(runID, res)
	}
	return nil
}

func printResult(runID string, res *sim.Result) {
	initial := 0
	if len(res.Samples) > 0 {
		initial = res.Samples[0].Bodies
	}
	fmt.Printf("\nrun id: %s\n", runID)
	fmt.Printf("ticks: %d\n", res.TicksTaken)
	fmt.Printf("bodies: %d -> %d\n", initial, len(res.Final))
	if res.Model != "" {
		fmt.Printf("force model: %s\n", res.Model)
	}
	for _, e := range res.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	opts := viz.Options{Config: cfg, SnapshotDir: snapshotDir}

	if watch {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := config.Watch(configFile)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Updates, opts.Errors = w.Configs, w.Errors
	}
	return viz.RunLive(opts)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tBODIES\tFINAL\tLAW\tCOLLISION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Bodies,
			run.FinalBodies,
			run.Physics.Law,
			run.Physics.Collision,
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
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"bodies", func(s sim.Sample) float64 { return float64(s.Bodies) }},
		{"kinetic energy", func(s sim.Sample) float64 { return s.KineticEnergy }},
		{"collision pairs", func(s sim.Sample) float64 { return float64(s.Pairs) }},
	}
	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgOut != "" {
		energy := make([]float64, len(samples))
		for i, s := range samples {
			energy[i] = s.KineticEnergy
		}
		stroke := colorful.Color{R: 0, G: 1, B: 0.53}
		if err := export.WriteFile(svgOut, export.SeriesSVG(energy, 800, 300, stroke)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if jsonOut == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	if err := st.ExportJSONFile(jsonOut, args[0]); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", jsonOut)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	bodies, err := st.LoadBodies(runID)
	if err != nil {
		return err
	}

	path := svgOut
	if path == "" {
		path = runID + ".svg"
	}
	if err := export.WriteFile(path, export.SceneSVG(bodies, 800, 800)); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies)\n", path, len(bodies))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	scenarios := args
	if len(scenarios) == 0 {
		for s := range config.Presets {
			scenarios = append(scenarios, s)
		}
		sort.Strings(scenarios)
	}

	for _, s := range scenarios {
		presets := config.ListPresets(s)
		if len(presets) == 0 {
			fmt.Printf("no presets for scenario: %s\n", s)
			continue
		}
		fmt.Printf("presets for %s:\n", s)
		for _, p := range presets {
			cfg := config.GetPreset(s, p)
			fmt.Printf("  %-10s %5d bodies  %s, %s\n", p, cfg.Bodies, cfg.Physics.Law, cfg.Physics.Collision)
		}
	}
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Scenario = "cloud"
	cfg.Bodies = numBodies
	cfg.Seed = seed
	opts, err := cfg.ScenarioOptions()
	if err != nil {
		return err
	}
	world, err := cfg.World()
	if err != nil {
		return err
	}
	initial := world.Snapshot()

	backends := []compute.Backend{compute.Serial{}, compute.GetBackend()}
	models := []force.Model{force.Scalar{}}
	for _, b := range backends {
		models = append(models, force.NewParallel(b))
	}

	fmt.Printf("benchmarking force models on %d bodies\n\n", len(initial))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tTICKS\tTIME\tTICKS/SEC")
	for _, m := range models {
		bodies := make([]body.Body, len(initial))
		copy(bodies, initial)

		start := time.Now()
		for i := 0; i < benchTicks; i++ {
			m.Apply(bodies, opts.Force, body.AllPairs)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\n", m.Name(), benchTicks, elapsed, float64(benchTicks)/elapsed.Seconds())
	}

	params, err := cfg.Physics.EngineParams()
	if err != nil {
		return err
	}
	simCfg := sim.Config{Ticks: benchTicks, Params: params}
	for _, b := range backends {
		s := sim.New(engine.New(b, seed))
		scene := body.NewWorld(initial...)
		ran := 0
		start := time.Now()
		err := s.RunWithCallback(context.Background(), scene, simCfg, func(_ []body.Body, _ engine.Report, tick int) bool {
			ran = tick
			return true
		})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "engine/%s\t%d\t%v\t%.1f\n", s.Engine().Backend().Name(), ran, elapsed, float64(ran)/elapsed.Seconds())
	}
	return w.Flush()
}
