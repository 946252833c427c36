// Package config collects every external input spec §6 enumerates into a
// single Config struct and validates it before any simulation runs,
// mirroring the teacher's config.go/flags.go package-level constants and
// flags for the same set of concerns (grid size, timing, source
// behavior), generalized into a struct the driver package consumes.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config mirrors every external input spec §6 names.
type Config struct {
	Mode      string // "2d" or "2_5d"
	PML       bool
	PMLLayers int

	Scene string // "open_air" | "closed_tube" | "vertical_wall" | "open_tube" | "vowel"
	Vowel string // "a" | "u" | "i", only when Scene == "vowel"

	DomainW, DomainH       int
	TubeLength, TubeWidth  int

	SRateMultiplier int // actual sample rate = 44100 * SRateMultiplier

	SourceKind string // "sinusoid" | "gaussian" | "impulse"
	SourceFreq float64
	SourceFMin, SourceFMax float64
	SourceSeed int64

	DurationMS int

	// SnapshotEvery is K, the visualization sink's snapshot period in
	// steps (spec §4.7). Zero disables snapshots.
	SnapshotEvery int
}

var validScenes = map[string]bool{
	"open_air": true, "closed_tube": true, "vertical_wall": true,
	"open_tube": true, "vowel": true,
}

var validVowels = map[string]bool{"a": true, "u": true, "i": true}

var validSources = map[string]bool{"sinusoid": true, "gaussian": true, "impulse": true}

// ConfigError aggregates every validation failure Validate found, so a
// caller sees all of them at once instead of one at a time.
type ConfigError struct {
	Errs []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "config: " + strings.Join(msgs, "; ")
}

func (e *ConfigError) Unwrap() []error { return e.Errs }

// Validate checks c against spec §6/§7's constraints, returning a
// *ConfigError (nil if c is valid). It never inspects the PML-padded
// frame size — that check lives in grid.New, since only grid knows the
// minimum span a given layer count needs.
func (c Config) Validate() *ConfigError {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if c.Mode != "2d" && c.Mode != "2_5d" {
		add(fmt.Errorf("mode %q must be \"2d\" or \"2_5d\"", c.Mode))
	}
	if c.PML && c.PMLLayers <= 0 {
		add(errors.New("pml_layers must be positive when pml is on"))
	}
	if !validScenes[c.Scene] {
		add(fmt.Errorf("scene %q is not one of open_air, closed_tube, vertical_wall, open_tube, vowel", c.Scene))
	}
	if c.Scene == "vowel" && !validVowels[c.Vowel] {
		add(fmt.Errorf("vowel %q must be one of a, u, i", c.Vowel))
	}
	if c.Scene != "vowel" {
		if c.DomainW <= 0 || c.DomainH <= 0 {
			add(errors.New("domain_w and domain_h must be positive"))
		}
	}
	if c.Scene == "closed_tube" || c.Scene == "open_tube" {
		if c.TubeLength <= 0 || c.TubeWidth <= 0 {
			add(errors.New("tube_length and tube_width must be positive for closed_tube/open_tube"))
		}
	}
	if c.SRateMultiplier <= 0 {
		add(errors.New("srate_multiplier must be positive"))
	}
	if !validSources[c.SourceKind] {
		add(fmt.Errorf("source %q must be one of sinusoid, gaussian, impulse", c.SourceKind))
	}
	if (c.SourceKind == "sinusoid" || c.SourceKind == "gaussian") && c.SourceFreq <= 0 {
		add(errors.New("source frequency must be positive"))
	}
	if c.SourceKind == "impulse" && (c.SourceFMin <= 0 || c.SourceFMax <= c.SourceFMin) {
		add(errors.New("impulse requires 0 < fmin < fmax"))
	}
	if c.DurationMS <= 0 {
		add(errors.New("duration_ms must be positive"))
	}

	if len(errs) == 0 {
		return nil
	}
	return &ConfigError{Errs: errs}
}

// SampleRate is 44100 * SRateMultiplier Hz (spec §6).
func (c Config) SampleRate() float64 { return 44100 * float64(c.SRateMultiplier) }
