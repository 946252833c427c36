package driver

import (
	"math"
	"testing"

	"tubesim/analysis"
	"tubesim/cellkind"
	"tubesim/config"
	"tubesim/physics"
)

func validConfig() config.Config {
	return config.Config{
		Mode: "2d", PML: true, PMLLayers: 6,
		Scene: "open_air", DomainW: 60, DomainH: 60,
		SRateMultiplier: 1,
		SourceKind:      "sinusoid", SourceFreq: 1000,
		DurationMS: 4,
	}
}

func TestRunOpenAirSinusoid(t *testing.T) {
	cfg := validConfig()

	res, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	samples := res.Listener.Samples()
	if len(samples) == 0 {
		t.Fatal("no samples recorded")
	}
	if samples[0] != 0 {
		t.Fatalf("samples[0] = %v, want 0 (S1 seed scenario)", samples[0])
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("sample %d is non-finite: %v", i, s)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := validConfig()
	cfg.DomainW, cfg.DomainH = 40, 40
	cfg.DurationMS = 3

	r1, err1 := Run(cfg, nil)
	r2, err2 := Run(cfg, nil)
	if err1 != nil || err2 != nil {
		t.Fatalf("Run errs: %v %v", err1, err2)
	}
	s1, s2 := r1.Listener.Samples(), r2.Listener.Samples()
	if len(s1) != len(s2) {
		t.Fatalf("sample count differs: %d vs %d", len(s1), len(s2))
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("sample %d diverged: %v != %v", i, s1[i], s2[i])
		}
	}
}

func TestRunVowelTubeSurfacesWarning(t *testing.T) {
	cfg := validConfig()
	cfg.Scene = "vowel"
	cfg.Vowel = "i"
	cfg.DurationMS = 2

	res, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Listener.Samples()) == 0 {
		t.Fatal("no samples recorded for vowel scene")
	}
	t.Logf("warnings: %v", res.Warnings)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Scene = "not-a-scene"
	if _, err := Run(cfg, nil); err == nil {
		t.Fatal("expected a ConfigError for an invalid scene")
	}
}

func TestRunWithVisualizer(t *testing.T) {
	cfg := validConfig()
	cfg.DomainW, cfg.DomainH = 40, 40
	cfg.DurationMS = 2
	cfg.SnapshotEvery = 5

	v := &countingVisualizer{}
	if _, err := Run(cfg, v); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.count == 0 {
		t.Fatal("visualizer received no snapshots")
	}
}

type countingVisualizer struct {
	count int
}

func (v *countingVisualizer) Snapshot(step int, p []float64, types []cellkind.CellKind) {
	v.count++
}

// TestPMLAbsorptionDecays is Testable Property 3: with PML enabled, the
// open_air impulse response's energy decays toward zero well inside the
// simulated window, instead of ringing forever as it would with PML off.
func TestPMLAbsorptionDecays(t *testing.T) {
	cfg := validConfig()
	cfg.DomainW, cfg.DomainH = 50, 50
	cfg.SourceKind, cfg.SourceFMin, cfg.SourceFMax = "impulse", 200, 4000
	cfg.SourceSeed = 7
	cfg.DurationMS = 30

	res, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	samples := res.Listener.Samples()
	if len(samples) < 100 {
		t.Fatalf("too few samples to judge decay: %d", len(samples))
	}

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		t.Fatal("impulse produced no response at all")
	}

	tailStart := len(samples) - len(samples)/5
	tailPeak := 0.0
	for _, s := range samples[tailStart:] {
		if a := math.Abs(s); a > tailPeak {
			tailPeak = a
		}
	}
	if tailPeak > 0.01*peak {
		t.Fatalf("tail peak %v is not below 1%% of overall peak %v (PML not absorbing)", tailPeak, peak)
	}
}

// TestClosedTubeFirstResonance is Testable Property 4: a closed-open tube
// driven by a broadband impulse shows its listener-spectrum fundamental
// near c/(4*L_tube*deltaS).
func TestClosedTubeFirstResonance(t *testing.T) {
	cfg := validConfig()
	cfg.Scene = "closed_tube"
	cfg.TubeLength, cfg.TubeWidth = 80, 5
	cfg.SourceKind, cfg.SourceFMin, cfg.SourceFMax = "impulse", 50, 8000
	cfg.SourceSeed = 3
	cfg.DurationMS = 200

	res, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	freqs, mags, err := TransferFunction(res.Listener, cfg.SampleRate())
	if err != nil {
		t.Fatalf("TransferFunction: %v", err)
	}
	peaks := analysis.PeakFrequencies(freqs, mags, 1)
	if len(peaks) == 0 {
		t.Fatal("no spectral peak found")
	}

	phys := physics.Default()
	dt := 1.0 / cfg.SampleRate()
	deltaX := phys.C * dt * math.Sqrt2
	fundamental := phys.C / (4 * float64(cfg.TubeLength) * deltaX)

	if rel := math.Abs(peaks[0]-fundamental) / fundamental; rel > 0.1 {
		t.Fatalf("fundamental peak %.2f Hz is not within 10%% of expected %.2f Hz", peaks[0], fundamental)
	}
}
