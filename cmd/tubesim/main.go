// Command tubesim runs one FDTD acoustic-tube simulation from flag-based
// configuration and reports how many listener samples it recorded plus,
// with -spectrum, the listener's top spectral peaks,
// mirroring the teacher's flags.go (package-level flag vars) and main.go
// (flag.Parse() + construct + run) shape, retargeted from the teacher's
// interactive wave-garden toy onto spec.md's batch simulation driver.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tubesim/analysis"
	"tubesim/config"
	"tubesim/driver"
)

var (
	modeFlag      = flag.String("mode", "2d", "\"2d\" or \"2_5d\"")
	pmlFlag       = flag.Bool("pml", true, "enable PML absorption at the outer border")
	pmlLayers     = flag.Int("pml-layers", 6, "number of graded PML rings")
	sceneFlag     = flag.String("scene", "open_air", "open_air | closed_tube | vertical_wall | open_tube | vowel")
	vowelFlag     = flag.String("vowel", "a", "a | u | i (scene=vowel only)")
	domainW       = flag.Int("domain-w", 100, "interior width in cells (ignored for scene=vowel)")
	domainH       = flag.Int("domain-h", 100, "interior height in cells (ignored for scene=vowel)")
	tubeLength    = flag.Int("tube-length", 80, "tube length in cells (closed_tube/open_tube)")
	tubeWidth     = flag.Int("tube-width", 5, "tube width in cells (closed_tube/open_tube)")
	srateMult     = flag.Int("srate-multiplier", 1, "sample rate = 44100 * multiplier Hz")
	sourceKind    = flag.String("source", "sinusoid", "sinusoid | gaussian | impulse")
	sourceFreq    = flag.Float64("source-freq", 1000, "source frequency in Hz (sinusoid/gaussian)")
	sourceFMin    = flag.Float64("source-fmin", 100, "impulse band lower bound in Hz")
	sourceFMax    = flag.Float64("source-fmax", 4000, "impulse band upper bound in Hz")
	sourceSeed    = flag.Int64("source-seed", 1, "impulse generator seed, for determinism")
	durationMS    = flag.Int("duration-ms", 50, "total simulated duration in milliseconds")
	snapshotEvery = flag.Int("snapshot-every", 0, "publish a field snapshot every K steps (0 disables)")
	showSpectrum  = flag.Bool("spectrum", false, "print the listener's top spectral peaks after the run")
)

func main() {
	flag.Parse()

	cfg := config.Config{
		Mode:            *modeFlag,
		PML:             *pmlFlag,
		PMLLayers:       *pmlLayers,
		Scene:           *sceneFlag,
		Vowel:           *vowelFlag,
		DomainW:         *domainW,
		DomainH:         *domainH,
		TubeLength:      *tubeLength,
		TubeWidth:       *tubeWidth,
		SRateMultiplier: *srateMult,
		SourceKind:      *sourceKind,
		SourceFreq:      *sourceFreq,
		SourceFMin:      *sourceFMin,
		SourceFMax:      *sourceFMax,
		SourceSeed:      *sourceSeed,
		DurationMS:      *durationMS,
		SnapshotEvery:   *snapshotEvery,
	}

	res, err := driver.Run(cfg, nil)
	if err != nil {
		log.Fatalf("tubesim: %v", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "tubesim: warning: %s\n", w.Message)
	}

	samples := res.Listener.Samples()
	fmt.Printf("recorded %d samples at listener %v\n", len(samples), res.Listener.Cell())

	if *showSpectrum {
		freqs, mags, err := analysis.Spectrum(samples, cfg.SampleRate())
		if err != nil {
			log.Fatalf("tubesim: spectrum: %v", err)
		}
		for _, f := range analysis.PeakFrequencies(freqs, mags, 5) {
			fmt.Printf("peak: %.2f Hz\n", f)
		}
	}
}
