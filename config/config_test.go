package config

import "testing"

func validConfig() Config {
	return Config{
		Mode: "2d", PML: true, PMLLayers: 6,
		Scene: "open_air", DomainW: 100, DomainH: 100,
		SRateMultiplier: 1, SourceKind: "sinusoid", SourceFreq: 1000,
		DurationMS: 50,
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	c := validConfig()
	c.Mode = "bogus"
	c.Scene = "bogus"
	c.SRateMultiplier = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want a *ConfigError")
	}
	if len(err.Errs) != 3 {
		t.Fatalf("len(err.Errs) = %d, want 3: %v", len(err.Errs), err)
	}
}

func TestValidateVowelRequiresKnownVowel(t *testing.T) {
	c := validConfig()
	c.Scene = "vowel"
	c.Vowel = "z"
	err := c.Validate()
	if err == nil {
		t.Fatal("expected an error for an unknown vowel")
	}
}

func TestValidateTubeScenesRequireDimensions(t *testing.T) {
	c := validConfig()
	c.Scene = "closed_tube"
	err := c.Validate()
	if err == nil {
		t.Fatal("expected an error for a closed_tube with no tube dimensions")
	}
}

func TestSampleRate(t *testing.T) {
	c := Config{SRateMultiplier: 2}
	if got := c.SampleRate(); got != 88200 {
		t.Fatalf("SampleRate() = %v, want 88200", got)
	}
}
