package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/memespheres/internal/analysis"
	"github.com/san-kum/memespheres/internal/automation"
	"github.com/san-kum/memespheres/internal/export"
	"github.com/san-kum/memespheres/internal/scene"
	"github.com/san-kum/memespheres/internal/sim"
	"github.com/san-kum/memespheres/internal/storage"
	"github.com/san-kum/memespheres/internal/texture"
	"github.com/san-kum/memespheres/internal/viz"
	"github.com/spf13/cobra"
)

// settleTolerance is the spread band, in world units, counted as settled.
const settleTolerance = 0.05

func script(ticks []int) []sim.Scheduled {
	s := make([]sim.Scheduled, 0, len(ticks))
	for _, at := range ticks {
		s = append(s, sim.Scheduled{At: at, Do: sim.Explode})
	}
	return s
}

// checkTraceFlags rejects output flags that an ensemble run cannot honour.
func checkTraceFlags(runs int, save, csv bool, svg, scenario string) error {
	if runs < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", runs)
	}
	if runs == 1 {
		return nil
	}
	switch {
	case save:
		return fmt.Errorf("--save needs a single run, got --runs %d", runs)
	case csv:
		return fmt.Errorf("--csv needs a single run, got --runs %d", runs)
	case svg != "":
		return fmt.Errorf("--svg needs a single run, got --runs %d", runs)
	case scenario != "":
		return fmt.Errorf("--scenario needs a single run, got --runs %d", runs)
	}
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	if err := checkTraceFlags(runs, saveRun, csvOut, svgOut, scenarioFile); err != nil {
		return err
	}
	cfg, sc, d, err := setup(cmd, logWriter())
	if err != nil {
		return err
	}
	runCfg := sim.RunConfig{
		Ticks:    ticks,
		Interval: interval,
		Script:   script(explodeAt),
		Validate: true,
	}

	if runs > 1 {
		ens := sim.NewEnsemble(ensembleBuilder(cfg, len(sc.Textures)), runs, cfg.Seed)
		fmt.Printf("running %d seeds from %d...\n", runs, cfg.Seed)
		start := time.Now()
		results, err := ens.Run(cmd.Context(), runCfg)
		if err != nil {
			return err
		}
		fmt.Printf("completed in %v\n\n", time.Since(start))
		printMetrics(results[0].Metrics, func(name string) float64 { return sim.Mean(results, name) })
		return nil
	}

	label := preset
	explodes := explodeAt
	start := time.Now()
	var result *sim.Result
	if scenarioFile != "" {
		s, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		label = s.Name
		explodes = s.ExplodeTicks()
		fmt.Printf("running scenario %s (%d ticks)...\n", s.Name, s.Ticks)
		result, err = automation.RunScenario(cmd.Context(), s, cfg.PhysicsParams(), paramsBuilder(cfg, len(sc.Textures)))
		if err != nil {
			return err
		}
	} else {
		fmt.Printf("running %d ticks with %d spheres (seed %d)...\n", ticks, d.Store().Len(), cfg.Seed)
		result, err = d.Run(cmd.Context(), runCfg)
		if err != nil {
			return err
		}
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Label:    label,
			Seed:     cfg.Seed,
			Bodies:   d.Store().Len(),
			Textured: sc.Textured(),
			Explodes: explodes,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n\n", runID)
	}

	if csvOut {
		return storage.WriteSeries(os.Stdout, result)
	}

	printMetrics(result.Metrics, func(name string) float64 { return result.Metrics[name] })
	fmt.Println()
	plotSeries(result.Series)

	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.SeriesToSVG(f, result.Series["kinetic_energy"], 800, 240, "#3b82f6"); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

// plotSeries draws the headline series and the breathing analysis of the
// spread.
func plotSeries(series map[string][]float64) {
	for _, name := range []string{"kinetic_energy", sim.ForceSeries, "spread"} {
		data := series[name]
		if len(data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}

	spread := series["spread"]
	if period, ok := analysis.DominantPeriod(spread); ok {
		fmt.Printf("breathing period: %.1f ticks\n", period)
	}
	if n := analysis.SettleTicks(spread, settleTolerance); n >= 0 && n < len(spread)-1 {
		fmt.Printf("settled after %d ticks\n", n)
	} else if len(spread) > 0 {
		fmt.Println("still moving at the last tick")
	}
}

func printMetrics(m map[string]float64, value func(string) float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, value(name))
	}
	w.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, sc, d, err := setup(cmd, logWriter())
	if err != nil {
		return err
	}
	last := &lastFrame{}
	d.AddObserver(last)

	if _, err := d.Run(cmd.Context(), sim.RunConfig{Ticks: snapTicks, Script: script(snapExplodeAt)}); err != nil {
		return err
	}
	if last.frame == nil {
		return fmt.Errorf("no frame rendered")
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	cam := viz.NewCamera()
	painter := viz.NewPainter(cam, tints(sc.Textures))
	if err := export.FrameToSVG(f, last.frame, cam, painter, cfg.Window.Width, cfg.Window.Height); err != nil {
		return err
	}
	fmt.Printf("wrote %s (tick %d)\n", outFile, last.frame.Tick)
	return nil
}

func runTextures(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	srcs := cfg.Scene.Images
	if len(srcs) == 0 {
		srcs = scene.CatalogueURLs()
	}
	urls, err := cfg.ImageURLs()
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	start := time.Now()
	results := loader.LoadAll(cmd.Context(), urls)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSOURCE\tSTATUS\tTINT")
	ok := 0
	for i, r := range results {
		if !r.OK() {
			fmt.Fprintf(w, "%d\t%s\t%v\t-\n", i, srcs[i], r.Err)
			continue
		}
		ok++
		fmt.Fprintf(w, "%d\t%s\tok\t#%06x\n", i, srcs[i], texture.AverageColor(r.Image, scene.Palette[0]))
	}
	w.Flush()
	fmt.Printf("\n%d/%d loaded in %v\n", ok, len(results), time.Since(start))
	return nil
}
