package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k|^2 / n for k in [0, n/2] of the series with its
// mean removed. Bin k corresponds to a period of n/k ticks.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for k := range ps {
		a := cmplx.Abs(spectrum[k])
		ps[k] = a * a / float64(n)
	}
	return ps
}

// DominantPeriod returns the period in ticks of the strongest non-DC bin.
// It reports false for series too short or flat to have one.
func DominantPeriod(data []float64) (float64, bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, false
	}

	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 || bestPower < 1e-18 {
		return 0, false
	}
	return float64(len(data)) / float64(best), true
}

// SettleTicks returns the first index after which every sample stays within
// tol of the series' final value, or -1 for an empty series.
func SettleTicks(data []float64, tol float64) int {
	if len(data) == 0 {
		return -1
	}
	final := data[len(data)-1]
	settled := len(data) - 1
	for i := len(data) - 1; i >= 0; i-- {
		if math.Abs(data[i]-final) > tol {
			break
		}
		settled = i
	}
	return settled
}
