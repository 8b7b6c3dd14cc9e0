// Package analysis inspects per-tick diagnostic series recorded from a run.
//
//   - [PowerSpectrum]: one-sided power spectrum of a mean-removed series
//   - [DominantPeriod]: period, in ticks, of the strongest oscillation
//   - [SettleTicks]: ticks until a series stays inside a band around its tail
//
// After an explosion the swarm overshoots the attractor and oscillates while
// friction bleeds off energy. The dominant period of the spread series is
// that "breathing" period:
//
//	period, ok := analysis.DominantPeriod(res.Series["spread"])
package analysis
