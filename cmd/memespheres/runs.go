package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/memespheres/internal/automation"
	"github.com/san-kum/memespheres/internal/optim"
	"github.com/san-kum/memespheres/internal/sim"
	"github.com/san-kum/memespheres/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", dataDir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tBODIES\tTICKS\tKINETIC\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.6f\t%s\n",
			r.ID, r.Label, r.Bodies, r.Ticks, r.Metrics["kinetic_energy"], r.Timestamp.Format(time.DateTime))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d spheres, %d ticks, seed %d\n\n", meta.ID, meta.Bodies, meta.Ticks, meta.Seed)
	plotSeries(series)
	return nil
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, sc, _, err := setup(cmd, logWriter())
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Run:       sim.RunConfig{Ticks: ticks, Script: script(explodeAt), Validate: true},
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, cfg.PhysicsParams(), paramsBuilder(cfg, len(sc.Textures)), logWriter())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tSTATUS\n", strings.ToUpper(sweepParam), metricName)
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(w, "%g\t%.6f\t%s\n", r.ParamValue, r.Metrics[metricName], status)
	}
	w.Flush()

	stable, unstable := automation.SweepStats(results)
	fmt.Printf("\n%d stable, %d rejected or unstable\n", stable, unstable)
	return nil
}

// parseGrid reads name=lo:hi:n.
func parseGrid(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("grid %q: want name=lo:hi:n", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: want name=lo:hi:n", spec)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", spec, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("grid %q: bad point count", spec)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	if len(gridSpecs) == 0 {
		return fmt.Errorf("tune: at least one --grid is required")
	}
	names := make([]string, 0, len(gridSpecs))
	ranges := make([][]float64, 0, len(gridSpecs))
	for _, spec := range gridSpecs {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	cfg, sc, _, err := setup(cmd, logWriter())
	if err != nil {
		return err
	}

	fmt.Printf("searching %v to minimise %s...\n", names, tuneMetric)
	start := time.Now()
	g := optim.NewGridSearch(names, ranges)
	best, val, n, err := g.Search(cmd.Context(), cfg.PhysicsParams(), paramsBuilder(cfg, len(sc.Textures)),
		sim.RunConfig{Ticks: ticks, Script: script(explodeAt), Validate: true}, tuneMetric)
	if err != nil {
		return err
	}
	fmt.Printf("evaluated %d points in %v\n\n", n, time.Since(start))

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %g\n", k, best[k])
	}
	fmt.Printf("  %s: %.6f\n", tuneMetric, val)
	return nil
}
