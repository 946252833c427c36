package analysis

import (
	"math"
	"testing"
)

func TestSpectrumFindsSinePeak(t *testing.T) {
	const sampleRate = 48000.0
	const freq = 1000.0
	n := 4096
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	freqs, mags, err := Spectrum(samples, sampleRate)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	peaks := PeakFrequencies(freqs, mags, 1)
	if len(peaks) != 1 {
		t.Fatalf("len(peaks) = %d, want 1", len(peaks))
	}
	if math.Abs(peaks[0]-freq) > freq*0.02 {
		t.Fatalf("peak = %v, want within 2%% of %v", peaks[0], freq)
	}
}

func TestSpectrumRejectsEmptyInput(t *testing.T) {
	if _, _, err := Spectrum(nil, 48000); err == nil {
		t.Fatal("expected an error for empty input")
	}
}
