package fdtd

import (
	"runtime"
	"testing"

	"tubesim/cellkind"
	"tubesim/geometry"
	"tubesim/grid"
	"tubesim/physics"
)

const testDt = 1.0 / 48000

func buildOpenAir(t *testing.T, pml bool) (*grid.Grid, *Engine, grid.Point) {
	t.Helper()
	phys := physics.Default()
	deltaX := phys.C * testDt * 1.4142135623730951
	params := geometry.Params{DomainH: 40, DomainW: 40, PML: pml, PMLLayers: 6}
	g, listener, region, err := geometry.OpenAir(params)
	if err != nil {
		t.Fatalf("OpenAir: %v", err)
	}
	layers := 0
	if pml {
		layers = 6
	}
	reg := cellkind.NewRegistry(layers, phys.SigmaMax, testDt)
	g.DeriveCoefficients(reg, phys.Rho, phys.C, testDt, deltaX)
	e := New(g, reg, phys, deltaX, deltaX, listener, region, runtime.NumCPU())
	return g, e, listener
}

func TestEmptyDomainQuiescence(t *testing.T) {
	g, e, _ := buildOpenAir(t, false)
	for step := 0; step < 20; step++ {
		out, err := e.Step(0)
		if err != nil {
			t.Fatalf("Step %d: %v", step, err)
		}
		if out != 0 {
			t.Fatalf("step %d: listener = %v, want 0", step, out)
		}
	}
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.P(r, c) != 0 || g.Vx(r, c) != 0 || g.Vy(r, c) != 0 {
				t.Fatalf("cell (%d,%d) is non-zero after a zero-excitation run", r, c)
			}
		}
	}
}

func TestSymmetryAboutSource(t *testing.T) {
	g, e, listener := buildOpenAir(t, false)
	if _, err := e.Step(1.0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for step := 0; step < 10; step++ {
		if _, err := e.Step(0); err != nil {
			t.Fatalf("Step %d: %v", step, err)
		}
	}
	const tol = 1e-9
	for dr := 1; dr < 10; dr++ {
		for dc := 1; dc < 10; dc++ {
			a := g.P(listener.R+dr, listener.C+dc)
			b := g.P(listener.R-dr, listener.C+dc)
			c := g.P(listener.R+dr, listener.C-dc)
			d := g.P(listener.R-dr, listener.C-dc)
			if abs(a-b) > tol || abs(a-c) > tol || abs(a-d) > tol {
				t.Fatalf("asymmetry at offset (%d,%d): %v %v %v %v", dr, dc, a, b, c, d)
			}
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	_, e1, _ := buildOpenAir(t, true)
	_, e2, _ := buildOpenAir(t, true)
	for step := 0; step < 50; step++ {
		sample := 0.0
		if step < 5 {
			sample = 0.3
		}
		o1, err1 := e1.Step(sample)
		o2, err2 := e2.Step(sample)
		if err1 != nil || err2 != nil {
			t.Fatalf("step %d errs: %v %v", step, err1, err2)
		}
		if o1 != o2 {
			t.Fatalf("step %d: outputs diverged: %v != %v", step, o1, o2)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
