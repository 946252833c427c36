// Package driver ties the registry, grid, geometry, coefficients,
// source, and engine together into one simulation run, the way the
// teacher's game.go's newGame/Update wires its own equivalents into one
// gameplay loop.
package driver

import (
	"math"
	"runtime"

	"tubesim/analysis"
	"tubesim/cellkind"
	"tubesim/config"
	"tubesim/fdtd"
	"tubesim/geometry"
	"tubesim/grid"
	"tubesim/observer"
	"tubesim/physics"
	"tubesim/source"
)

func numWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Warning is a non-fatal issue surfaced during a run — currently only
// geometry's vowel-tube length rounding error (spec §7's GeometryError).
type Warning struct {
	Message string
}

// Result is everything a completed (or early-stopped) run produced.
type Result struct {
	Listener *observer.Listener
	Warnings []Warning
}

const sqrt2 = math.Sqrt2

// Simulation is a built scene ready to step one sample at a time. Run
// drives one to completion in a tight loop; cmd/tubepreview drives one
// interactively, one Update() tick at a time, the way the teacher's
// game.go drives its own field/solver pair from Game.Update.
type Simulation struct {
	engine     *fdtd.Engine
	grid       *grid.Grid
	listener   *observer.Listener
	sampleRate float64
	excitation []float64
	step       int
	Warnings   []Warning
}

// Build validates cfg, constructs the scene, coefficient tables, and
// FDTD engine, and pre-generates the full excitation sequence, without
// stepping. Callers that want to step interactively (cmd/tubepreview)
// use this instead of Run.
func Build(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	phys := physics.Default()
	sampleRate := cfg.SampleRate()
	dt := 1.0 / sampleRate
	deltaX := phys.C * dt * sqrt2 // CFL: Δx = Δy = c·Δt·√2

	g, listenerPt, region, warnings, err := buildScene(cfg, deltaX)
	if err != nil {
		return nil, err
	}

	layers := 0
	if cfg.PML {
		layers = cfg.PMLLayers
	}
	reg := cellkind.NewRegistry(layers, phys.SigmaMax, dt)
	g.DeriveCoefficients(reg, phys.Rho, phys.C, dt, deltaX)

	steps := int(cfg.DurationMS) * int(sampleRate) / 1000
	excitation := generateExcitation(cfg, sampleRate, steps)

	engine := fdtd.New(g, reg, phys, deltaX, deltaX, listenerPt, region, numWorkers())

	return &Simulation{
		engine:     engine,
		grid:       g,
		listener:   observer.NewListener(listenerPt),
		sampleRate: sampleRate,
		excitation: excitation,
		Warnings:   warnings,
	}, nil
}

// Done reports whether every pre-generated excitation sample has been
// consumed.
func (s *Simulation) Done() bool { return s.step >= len(s.excitation) }

// Step advances the simulation by one sample, recording the listener's
// probed pressure. It is a no-op returning (0, nil) once Done.
func (s *Simulation) Step() (float64, error) {
	if s.Done() {
		return 0, nil
	}
	out, err := s.engine.Step(s.excitation[s.step])
	s.step++
	if err != nil {
		return out, err
	}
	s.listener.Append(out)
	return out, nil
}

// Grid exposes the live grid for visualization sinks that want direct
// access to the pressure/type planes (cmd/tubepreview's renderer).
func (s *Simulation) Grid() *grid.Grid { return s.grid }

// Listener returns the probe recording one sample per completed Step.
func (s *Simulation) Listener() *observer.Listener { return s.listener }

// SampleRate is the simulation's sample rate in Hz (spec §6).
func (s *Simulation) SampleRate() float64 { return s.sampleRate }

// Run builds and steps a full simulation from cfg, publishing snapshots
// to vis every cfg.SnapshotEvery steps. It returns as soon as cfg's
// configured duration elapses, or immediately after the first
// *fdtd.NumericError — in both cases the listener buffer up to the last
// completed step is valid output (spec §5's only cancellation point is
// between steps).
func Run(cfg config.Config, vis observer.Visualizer) (*Result, error) {
	if vis == nil {
		vis = observer.NullVisualizer{}
	}

	sim, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	for i := 0; !sim.Done(); i++ {
		if _, stepErr := sim.Step(); stepErr != nil {
			return &Result{Listener: sim.listener, Warnings: sim.Warnings}, stepErr
		}
		if cfg.SnapshotEvery > 0 && i%cfg.SnapshotEvery == 0 {
			vis.Snapshot(i, observer.Snapshot(sim.grid.PSlice(), sim.grid.Type), sim.grid.Type)
		}
	}

	return &Result{Listener: sim.listener, Warnings: sim.Warnings}, nil
}

func buildScene(cfg config.Config, deltaX float64) (*grid.Grid, grid.Point, source.Region, []Warning, error) {
	params := geometry.Params{
		DomainH: cfg.DomainH, DomainW: cfg.DomainW,
		PML: cfg.PML, PMLLayers: cfg.PMLLayers,
		TubeLength: cfg.TubeLength, TubeWidth: cfg.TubeWidth,
		Vowel: cfg.Vowel, DeltaS: deltaX,
	}

	switch cfg.Scene {
	case "open_air":
		g, l, r, err := geometry.OpenAir(params)
		return g, l, r, nil, err
	case "closed_tube":
		g, l, r, err := geometry.ClosedTube(params)
		return g, l, r, nil, err
	case "vertical_wall":
		g, l, r, err := geometry.VerticalWall(params)
		return g, l, r, nil, err
	case "open_tube":
		g, l, r, err := geometry.OpenTube(params)
		return g, l, r, nil, err
	case "vowel":
		g, l, r, lenErr, err := geometry.VowelTube(params)
		var warnings []Warning
		if lenErr != nil {
			warnings = append(warnings, Warning{Message: lenErr.Error()})
		}
		return g, l, r, warnings, err
	default:
		panic("driver: unreachable scene after Validate: " + cfg.Scene)
	}
}

func generateExcitation(cfg config.Config, sampleRate float64, steps int) []float64 {
	gen := source.NewGenerator()
	switch cfg.SourceKind {
	case "sinusoid":
		return gen.Sinusoid(cfg.SourceFreq, sampleRate, steps)
	case "gaussian":
		return gen.Gaussian(cfg.SourceFreq, sampleRate, steps)
	case "impulse":
		return gen.Impulse(cfg.SourceFMin, cfg.SourceFMax, sampleRate, steps, cfg.SourceSeed)
	default:
		panic("driver: unreachable source kind after Validate: " + cfg.SourceKind)
	}
}

// TransferFunction runs an impulse-response analysis over a completed
// listener buffer, exposed for callers that want a spectrum out of a
// broadband-impulse run without re-simulating (Testable Property 4).
func TransferFunction(listener *observer.Listener, sampleRate float64) (freqs, mags []float64, err error) {
	return analysis.Spectrum(listener.Samples(), sampleRate)
}
