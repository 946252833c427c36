package source

import (
	"math"
	"testing"
)

func TestSinusoidFirstSampleIsZero(t *testing.T) {
	g := NewGenerator()
	out := g.Sinusoid(1000, 48000, 10)
	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out[0])
	}
	want := math.Sin(2 * math.Pi * 1000 / 48000)
	if math.Abs(out[1]-want) > 1e-12 {
		t.Fatalf("out[1] = %v, want %v", out[1], want)
	}
}

func TestGaussianPeaksAtSixTau(t *testing.T) {
	g := NewGenerator()
	freq := 500.0
	sampleRate := 48000.0
	tau := 0.5 / freq
	peakSample := int(math.Round(6 * tau * sampleRate))
	out := g.Gaussian(freq, sampleRate, peakSample*2)
	if math.Abs(out[peakSample]-1.0) > 1e-6 {
		t.Fatalf("out[peak] = %v, want ~1.0", out[peakSample])
	}
	if out[0] >= out[peakSample] {
		t.Fatalf("pulse is not rising toward its peak")
	}
}

func TestImpulseIsDeterministic(t *testing.T) {
	g := NewGenerator()
	a := g.Impulse(100, 4000, 48000, 200, 42)
	b := g.Impulse(100, 4000, 48000, 200, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d diverged: %v != %v", i, a[i], b[i])
		}
	}
	c := g.Impulse(100, 4000, 48000, 200, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical impulse sequences")
	}
}
