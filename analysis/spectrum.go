// Package analysis turns a listener sample sequence into a frequency
// spectrum and picks its dominant peaks, grounded on
// CWBudde-algo-piano's cmd/spectral-compare (Hann-windowed
// algofft.NewPlanReal64/Forward spectral analysis) — used here for
// Testable Property 4's resonance-peak checks.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	algofft "github.com/cwbudde/algo-fft"
)

// Spectrum runs a single Hann-windowed real FFT over samples and returns
// the frequency (Hz) and magnitude of every bin.
func Spectrum(samples []float64, sampleRate float64) ([]float64, []float64, error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("analysis: Spectrum requires at least one sample")
	}
	fftSize := nextPowerOfTwo(len(samples))
	buf := make([]float64, fftSize)
	denom := float64(len(samples) - 1)
	for i, s := range samples {
		w := 1.0
		if denom > 0 {
			w = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denom)
		}
		buf[i] = s * w
	}

	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis: fft plan: %w", err)
	}
	spec := make([]complex128, fftSize/2+1)
	plan.Forward(spec, buf)

	binHz := sampleRate / float64(fftSize)
	freqs := make([]float64, len(spec))
	mags := make([]float64, len(spec))
	for k := range spec {
		freqs[k] = float64(k) * binHz
		mags[k] = cmplx.Abs(spec[k])
	}
	return freqs, mags, nil
}

func nextPowerOfTwo(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}

// PeakFrequencies returns the frequencies of the n tallest local maxima in
// mags, ascending by frequency.
func PeakFrequencies(freqs, mags []float64, n int) []float64 {
	type peak struct {
		freq, mag float64
	}
	var peaks []peak
	for k := 1; k < len(mags)-1; k++ {
		if mags[k] > mags[k-1] && mags[k] > mags[k+1] {
			peaks = append(peaks, peak{freqs[k], mags[k]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].mag > peaks[j].mag })
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].freq < peaks[j].freq })

	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.freq
	}
	return out
}
