package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/memespheres/internal/config"
	"github.com/san-kum/memespheres/internal/gui"
	"github.com/san-kum/memespheres/internal/scene"
	"github.com/san-kum/memespheres/internal/texture"
	"github.com/san-kum/memespheres/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	seed       int64
	count      int
	offline    bool
	stars      bool
	quiet      bool
	timeout    time.Duration
	// window
	width      int
	height     int
	frameRate  int
	pixelRatio float64
	theme      string
	// trace
	ticks        int
	explodeAt    []int
	interval     time.Duration
	runs         int
	csvOut       bool
	svgOut       string
	saveRun      bool
	scenarioFile string
	// snapshot
	outFile       string
	snapTicks     int
	snapExplodeAt []int
	// sweep and tune
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gridSpecs  []string
	metricName string
	tuneMetric string
	dataDir    string
)

// main registers the commands and opens the window when no subcommand is
// given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "memespheres",
		Short: "interactive field of memecoin spheres",
		RunE:  runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".memespheres", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.PersistentFlags().IntVar(&count, "count", scene.DefaultCount, "number of spheres")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip texture downloads and use the palette")
	rootCmd.PersistentFlags().BoolVar(&stars, "stars", true, "draw the starfield")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress texture fetch warnings")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", texture.DefaultTimeout, "per-image fetch timeout")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "viewport width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "viewport height")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().Float64Var(&pixelRatio, "pixel-ratio", 1, "device pixel ratio, 0 asks the monitor (capped at 2)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3d window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render the scene in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run headless and report metrics",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&ticks, "ticks", 600, "frames to simulate")
	traceCmd.Flags().IntSliceVar(&explodeAt, "explode-at", []int{60}, "ticks at which to click")
	traceCmd.Flags().DurationVar(&interval, "interval", 0, "wall time per tick (0 runs flat out)")
	traceCmd.Flags().IntVar(&runs, "runs", 1, "independent seeds to run in parallel (metrics only)")
	traceCmd.Flags().BoolVar(&csvOut, "csv", false, "write per-tick series as CSV to stdout")
	traceCmd.Flags().StringVar(&svgOut, "svg", "", "write the kinetic energy series as SVG")
	traceCmd.Flags().BoolVar(&saveRun, "save", false, "store the run in the data directory")
	traceCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml) with scripted input")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate headless and write the final frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapTicks, "ticks", 240, "frames to simulate")
	snapshotCmd.Flags().IntSliceVar(&snapExplodeAt, "explode-at", nil, "ticks at which to click")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "memespheres.svg", "output file")

	texturesCmd := &cobra.Command{
		Use:   "textures",
		Short: "fetch the logo catalogue and report each result",
		RunE:  runTextures,
	}

	listCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same scene across a range of one physics constant",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", "physics constant to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.95, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.999, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 600, "frames per value")
	sweepCmd.Flags().IntSliceVar(&explodeAt, "explode-at", []int{60}, "ticks at which to click")
	sweepCmd.Flags().StringVar(&metricName, "metric", "spread", "metric to report")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics constants to minimise a metric",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "name=lo:hi:n, repeatable")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 600, "frames per point")
	tuneCmd.Flags().IntSliceVar(&explodeAt, "explode-at", []int{60}, "ticks at which to click")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "kinetic_energy", "metric to minimise")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, traceCmd, snapshotCmd, texturesCmd, listCmd, plotCmd, exportJSONCmd, sweepCmd, tuneCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, sc, d, err := setup(cmd, logWriter())
	if err != nil {
		return err
	}

	w := gui.Open(d, sc.Textures, gui.Options{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		FPS:        cfg.Window.FPS,
		PixelRatio: cfg.Window.PixelRatio,
	})
	defer w.Close()
	w.Run()
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the alternate screen would swallow fetch warnings
	cfg, sc, d, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	if !sc.Textured() && !cfg.Scene.Offline {
		fmt.Fprintln(os.Stderr, "no textures loaded, using palette")
	}
	m := viz.New(d, tints(sc.Textures), viz.GetTheme(cfg.Window.Theme), cfg.Window.FPS)
	return viz.Run(m)
}
