// Package source produces the excitation sample sequence the FDTD engine
// injects each step: a sinusoid, a Gaussian pulse, or a broadband impulse
// used to extract transfer functions (spec §4.6).
package source

import (
	"math"
	"math/rand"
)

// Generator produces a deterministic sample sequence of length n at the
// given sample rate. Every method is a pure function of its arguments;
// none consults wall-clock time, so identical arguments always produce
// bitwise-identical output (Testable Property 6).
type Generator interface {
	Sinusoid(freq, sampleRate float64, n int) []float64
	Gaussian(freq, sampleRate float64, n int) []float64
	Impulse(fmin, fmax, sampleRate float64, n int, seed int64) []float64
}

// generator is the only Generator implementation; it carries no state of
// its own.
type generator struct{}

// NewGenerator returns the standard source.Generator.
func NewGenerator() Generator { return generator{} }

// Sinusoid returns sin(2π·freq·t) sampled at sampleRate, grounded on
// other_examples/GarrettArm-frequencyplot__sine_generator.go's harmonic
// sine synthesis (here with a single, unit-amplitude harmonic).
func (generator) Sinusoid(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	dt := 1.0 / sampleRate
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

// Gaussian returns exp(-((t-6τ)/τ)²) with τ=0.5/freq, sampled at
// sampleRate (spec §4.6).
func (generator) Gaussian(freq, sampleRate float64, n int) []float64 {
	tau := 0.5 / freq
	dt := 1.0 / sampleRate
	out := make([]float64, n)
	for i := range out {
		t := float64(i) * dt
		x := (t - 6*tau) / tau
		out[i] = math.Exp(-x * x)
	}
	return out
}

// numImpulseTones is how many evenly spaced sinusoids Impulse sums to
// approximate a flat spectral response between fmin and fmax.
const numImpulseTones = 64

// Impulse synthesizes a broadband excitation with roughly flat response
// between fmin and fmax by summing numImpulseTones sinusoids with
// random, seeded phase — unlike the teacher's time.Now()-seeded
// noiseRand/brownState, this always takes an explicit seed so runs stay
// reproducible.
func (generator) Impulse(fmin, fmax, sampleRate float64, n int, seed int64) []float64 {
	out := make([]float64, n)
	dt := 1.0 / sampleRate
	rng := rand.New(rand.NewSource(seed))
	amp := 1.0 / float64(numImpulseTones)
	for k := 0; k < numImpulseTones; k++ {
		freq := fmin + (fmax-fmin)*float64(k)/float64(numImpulseTones-1)
		phase := rng.Float64() * 2 * math.Pi
		for i := range out {
			t := float64(i) * dt
			out[i] += amp * math.Sin(2*math.Pi*freq*t+phase)
		}
	}
	return out
}
