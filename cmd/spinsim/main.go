package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/spinsim/internal/analysis"
	"github.com/san-kum/spinsim/internal/config"
	"github.com/san-kum/spinsim/internal/ensemble"
	"github.com/san-kum/spinsim/internal/export"
	"github.com/san-kum/spinsim/internal/sequence"
	"github.com/san-kum/spinsim/internal/shapes"
	"github.com/san-kum/spinsim/internal/storage"
	"github.com/san-kum/spinsim/internal/sweep"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	workers int
	dataDir string
	// run
	configFile   string
	preset       string
	detuning     float64
	singleSpin   bool
	jsonPath     string
	csvPath      string
	svgPath      string
	showSpectrum bool
	noPlot       bool
	noSave       bool
	// shapes
	shapeDuration float64
	shapeSlices   int
	shapeBeta     float64
	shapeFreqLo   float64
	shapeFreqHi   float64
	// sweep
	tauMin     float64
	tauMax     float64
	tauSteps   int
	sweepDt    float64
	distKind   string
	distWidth  float64
	distCount  int
	sweepCSV   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spinsim",
		Short: "spin-1/2 pulsed magnetic resonance simulator",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "parallel workers (0 = all CPUs)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spinsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [experiment]",
		Short: "simulate an experiment and plot the detected signal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExperiment,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "preset variant for the experiment")
	runCmd.Flags().StringVar(&configFile, "config", "", "experiment config file (yaml)")
	runCmd.Flags().Float64Var(&detuning, "detuning", 0, "fixed detuning for --single")
	runCmd.Flags().BoolVar(&singleSpin, "single", false, "single spin at --detuning, no ensemble")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write trace JSON to file")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write trace CSV to file")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write trace SVG to file")
	runCmd.Flags().BoolVar(&showSpectrum, "spectrum", false, "plot the signal spectrum")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip terminal plots")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [experiment]",
		Short: "list preset variants for an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for experiment: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	shapesCmd := &cobra.Command{
		Use:   "shapes [name]",
		Short: "render a pulse envelope in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderShape,
	}
	shapesCmd.Flags().Float64Var(&shapeDuration, "duration", 10.0, "pulse duration")
	shapesCmd.Flags().IntVar(&shapeSlices, "slices", 160, "time slices")
	shapesCmd.Flags().Float64Var(&shapeBeta, "beta", shapes.DefaultBeta, "sech truncation")
	shapesCmd.Flags().Float64Var(&shapeFreqLo, "freq-start", -5.0, "sweep start (wurst, chirp)")
	shapesCmd.Flags().Float64Var(&shapeFreqHi, "freq-end", 5.0, "sweep end (wurst, chirp)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the echo delay of a two-pulse sequence",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&tauMin, "tau-min", 1.0, "smallest delay")
	sweepCmd.Flags().Float64Var(&tauMax, "tau-max", 8.0, "largest delay")
	sweepCmd.Flags().IntVar(&tauSteps, "steps", 8, "sweep points")
	sweepCmd.Flags().Float64Var(&sweepDt, "dt", 0.05, "detection time step")
	sweepCmd.Flags().StringVar(&distKind, "kind", "gaussian", "offset distribution")
	sweepCmd.Flags().Float64Var(&distWidth, "width", 2.0, "distribution width")
	sweepCmd.Flags().IntVar(&distCount, "samples", 101, "ensemble samples")
	sweepCmd.Flags().StringVar(&sweepCSV, "csv", "", "write sweep CSV to file")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "run the physics self-check",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := ensemble.SelfCheck(context.Background(), logger())
			if err != nil {
				return err
			}
			for _, line := range report.Diagnostics {
				fmt.Println(line)
			}
			if !report.Passed {
				return fmt.Errorf("self-check failed")
			}
			fmt.Println("self-check passed")
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, presetsCmd, shapesCmd, sweepCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// loadConfig resolves the experiment config: --config wins, then a
// preset, then the built-in default.
func loadConfig(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 1 {
		experiment := args[0]
		variant := preset
		if variant == "" {
			names := config.ListPresets(experiment)
			if len(names) == 0 {
				return nil, fmt.Errorf("unknown experiment: %s", experiment)
			}
			return nil, fmt.Errorf("pick a preset for %s with --preset (available: %s)",
				experiment, strings.Join(names, ", "))
		}
		cfg := config.GetPreset(experiment, variant)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s (available: %s)",
				experiment, variant, strings.Join(config.ListPresets(experiment), ", "))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		workers = cfg.Workers
	}

	seq, err := cfg.BuildSequence()
	if err != nil {
		return err
	}
	dist := cfg.BuildDistribution()

	sim := ensemble.New(workers, logger())
	start := time.Now()

	var res *ensemble.Result
	if singleSpin {
		res, err = sim.SimulateAt(context.Background(), seq, detuning)
	} else {
		res, err = sim.Simulate(context.Background(), seq, dist)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	peak := analysis.EchoPeak(res)
	fmt.Printf("sequence: %s\n", seq.Name())
	if singleSpin {
		fmt.Printf("single spin at detuning %g\n", detuning)
	} else {
		fmt.Printf("ensemble: %s width %g, %d samples\n", dist.Kind, dist.Width, dist.Samples)
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("echo peak: |M| = %.4f at t = %.3f\n", peak.Amplitude, peak.Time)

	if !noPlot {
		fmt.Println()
		plotTrace(res)
	}
	if showSpectrum {
		spec, err := analysis.ComputeSpectrum(res)
		if err != nil {
			return err
		}
		fmt.Println()
		graph := asciigraph.Plot(spec.Power,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("spectrum power, %.2f to %.2f",
				spec.Freq[0], spec.Freq[len(spec.Freq)-1])),
		)
		fmt.Println(graph)
		fmt.Printf("\nstrongest component at %.3f\n", spec.PeakFrequency())
	}

	if jsonPath != "" {
		if err := export.TraceJSON(jsonPath, seq.Name(), dist, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if csvPath != "" {
		if err := export.TraceCSV(csvPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if svgPath != "" {
		if err := export.TraceSVG(svgPath, res, 800, 400); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	if !noSave && !singleSpin {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(seq.Name(), dist, peak.Time, peak.Amplitude, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEQUENCE\tDISTRIBUTION\tECHO AMP\tECHO TIME\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s w=%g n=%d\t%.4f\t%.3f\t%s\n",
			run.ID, run.Sequence, run.Distribution, run.Width, run.Samples,
			run.EchoAmp, run.EchoTime, run.Timestamp.Format(time.DateTime))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("sequence: %s\n", meta.Sequence)
	fmt.Printf("samples: %d points over %s width %g\n\n", meta.Points, meta.Distribution, meta.Width)
	plotTrace(res)
	return nil
}

func plotTrace(res *ensemble.Result) {
	for _, trace := range []struct {
		name string
		data []float64
	}{
		{"<Sx>", res.Sx},
		{"<Sy>", res.Sy},
		{"<Sz>", res.Sz},
	} {
		graph := asciigraph.Plot(trace.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", trace.name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func renderShape(cmd *cobra.Command, args []string) error {
	name := "gaussian"
	if len(args) == 1 {
		name = args[0]
	}
	params := shapes.Params{
		"beta":       shapeBeta,
		"freq_start": shapeFreqLo,
		"freq_end":   shapeFreqHi,
	}
	env, err := shapes.Generate(name, shapeDuration, shapeSlices, params)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(env.Amplitude,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s amplitude, duration %g", name, shapeDuration)),
	)
	fmt.Println(graph)

	if hasSweep(env.Freq) {
		fmt.Println()
		graph = asciigraph.Plot(env.Freq,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("frequency sweep"),
		)
		fmt.Println(graph)
	}
	return nil
}

func hasSweep(freq []float64) bool {
	for _, f := range freq {
		if f != 0 {
			return true
		}
	}
	return false
}

func runSweep(cmd *cobra.Command, args []string) error {
	taus, err := sweep.Range(tauMin, tauMax, tauSteps)
	if err != nil {
		return err
	}

	log := logger()
	sim := ensemble.New(workers, log)
	sw := sweep.New(sim, log)

	build := func(tau float64) (*sequence.Sequence, error) {
		points := int(2*tau/sweepDt) + 1
		return sequence.New(fmt.Sprintf("hahn tau=%g", tau)).
			AddPulse(math.Pi/2, 0).
			AddDelay(tau).
			AddPulse(math.Pi, 0).
			SetDetection(sweepDt, points).
			Build()
	}
	dist := ensemble.Distribution{
		Kind:    ensemble.Kind(distKind),
		Width:   distWidth,
		Samples: distCount,
	}

	start := time.Now()
	res, err := sw.Run(context.Background(), taus, build, dist)
	if err != nil {
		return err
	}
	fmt.Printf("swept %d delays in %v\n\n", len(taus), time.Since(start))

	graph := asciigraph.Plot(res.EchoAmp,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("echo amplitude, tau %g to %g", tauMin, tauMax)),
	)
	fmt.Println(graph)

	fmt.Println("\n  tau      echo time  echo amp")
	for i := range res.Values {
		fmt.Printf("  %-8g %-10.3f %.4f\n", res.Values[i], res.EchoTime[i], res.EchoAmp[i])
	}

	if sweepCSV != "" {
		if err := export.SweepCSV(sweepCSV, res); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", sweepCSV)
	}
	return nil
}
