package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/san-kum/memespheres/internal/interact"
	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted interaction sequence
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Ticks       int                `yaml:"ticks"`
	Params      map[string]float64 `yaml:"params"`
	Events      []Event            `yaml:"events"`
}

// Event is one input applied before tick At. X and Y are viewport pixels
// and only used by move.
type Event struct {
	At     int     `yaml:"at"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// ExplodeTicks lists the ticks of the explode and click events in order.
func (s *Scenario) ExplodeTicks() []int {
	var ticks []int
	for _, ev := range s.Events {
		if ev.Action == "explode" || ev.Action == "click" {
			ticks = append(ticks, ev.At)
		}
	}
	sort.Ints(ticks)
	return ticks
}

// Schedule converts the events into driver actions, sorted by tick.
func (s *Scenario) Schedule() ([]sim.Scheduled, error) {
	out := make([]sim.Scheduled, 0, len(s.Events))
	for i, ev := range s.Events {
		if ev.At < 0 {
			return nil, fmt.Errorf("event %d: negative tick %d", i, ev.At)
		}
		var do sim.Action
		switch ev.Action {
		case "explode", "click":
			do = sim.Explode
		case "pause":
			do = sim.Pause
		case "move":
			do = sim.MoveTo(ev.X, ev.Y)
		case "enter":
			do = func(c *interact.Controller) { c.PointerEnter() }
		default:
			return nil, fmt.Errorf("event %d: unknown action %q", i, ev.Action)
		}
		out = append(out, sim.Scheduled{At: ev.At, Do: do})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out, nil
}

// Apply overlays the scenario's parameter overrides on p.
func (s *Scenario) Apply(p *physics.Params) error {
	for k, v := range s.Params {
		if err := p.SetParam(k, v); err != nil {
			return err
		}
	}
	return p.Validate()
}

// RunScenario builds a driver with the scenario's parameters and plays its
// events for Ticks frames.
func RunScenario(ctx context.Context, s *Scenario, base physics.Params, build sim.ParamsBuilder) (*sim.Result, error) {
	if s.Ticks <= 0 {
		return nil, fmt.Errorf("scenario %s: ticks must be positive", s.Name)
	}
	p := base
	if err := s.Apply(&p); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	script, err := s.Schedule()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	d, err := build(p)
	if err != nil {
		return nil, err
	}
	return d.Run(ctx, sim.RunConfig{Ticks: s.Ticks, Script: script, Validate: true})
}

// ParameterSweep runs the same scene across a range of one constant
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Run       sim.RunConfig
}

// SweepResult holds the metrics of one sweep point
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Stable     bool // stayed finite for every tick
	Err        error
}

// RunSweep executes a parameter sweep. Points whose parameters fail
// validation are reported with Err set; only cancellation aborts the sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base physics.Params, build sim.ParamsBuilder, log io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep: need at least 1 step, got %d", sweep.NumSteps)
	}
	if _, ok := base.GetParams()[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("sweep: unknown param: %s", sweep.ParamName)
	}
	if err := sweep.Run.Check(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.ParamMin
		if sweep.NumSteps > 1 {
			val += (sweep.ParamMax - sweep.ParamMin) * float64(i) / float64(sweep.NumSteps-1)
		}

		res := SweepResult{ParamValue: val}
		p := base
		if err := p.SetParam(sweep.ParamName, val); err != nil {
			return results, err
		}
		if err := p.Validate(); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		d, err := build(p)
		if err != nil {
			return results, err
		}
		out, err := d.Run(ctx, sweep.Run)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return results, ctxErr
		}
		res.Err = err
		res.Stable = err == nil
		if out != nil {
			res.Metrics = out.Metrics
		}
		results = append(results, res)

		if log != nil {
			fmt.Fprintf(log, "sweep: %d/%d %s=%g\n", i+1, sweep.NumSteps, sweep.ParamName, val)
		}
	}
	return results, nil
}

// SweepStats counts stable and unstable points
func SweepStats(results []SweepResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
