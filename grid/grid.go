// Package grid owns the staggered pressure/velocity field and the
// classified cell-type plane the FDTD engine steps. It mirrors the
// double-buffered numeric slabs of the teacher's waveField
// (curr/prev/next float32 planes swapped by index flip) generalized to
// the coupled pressure/velocity system spec.md §3-§4.2 describes: instead
// of a single second-order plane, each of P, Vx, Vy carries a current and
// a next buffer, and Type/Dx/Dy/Dp are single read-only-after-build
// planes.
package grid

import (
	"fmt"

	"tubesim/cellkind"
)

// Options configures grid construction.
type Options struct {
	PML       bool
	PMLLayers int
}

// Point is a (row, column) cell coordinate in full-grid space, i.e.
// already offset past the Dead ring and any PML padding.
type Point struct {
	R, C int
}

// Grid is a rectangular H×W array of acoustic cells. Interior cells span
// rows/columns [1, H-2]×[1, W-2]; the outermost ring is always Dead, and
// (when PML is enabled) the next PMLLayers rings inward are graded PML.
type Grid struct {
	H, W int
	opts Options

	cur int // 0 or 1: index of the "current" half of each double buffer
	p   [2][]float64
	vx  [2][]float64
	vy  [2][]float64

	Type []cellkind.CellKind

	// Depth planes parameterize an optional 2.5D out-of-plane height
	// correction (spec.md §3). They default to 1.0 (pure 2D) and stay
	// there unless a geometry builder explicitly sets them.
	Dx, Dy, Dp []float64

	// Derived per-cell coefficients (spec.md §4.4), populated once by
	// DeriveCoefficients after geometry is final.
	MinBetaX, MinBetaY       []float64
	MaxSigmaDtX, MaxSigmaDtY []float64
	SigmaDtP                 []float64
	BetaSqDtOverRhoX         []float64
	BetaSqDtOverRhoY         []float64
	RhoCSqDtOverDx           float64
}

// MinInteriorSpan is the smallest interior dimension (H or W) a grid with
// `layers` PML rings can hold: one Dead ring, `layers` PML rings, and at
// least a two-cell interior, on each side — 2*layers + 4 total.
func MinInteriorSpan(layers int) int {
	return 2*layers + 4
}

// New allocates a grid of interior size domainH×domainW, framed by one
// Dead ring and (if opts.PML) opts.PMLLayers graded PML rings. It returns
// an error if the requested frame does not satisfy spec.md §3's sizing
// invariant (H >= 2L+4, W >= 2L+4).
func New(domainH, domainW int, opts Options) (*Grid, error) {
	layers := 0
	if opts.PML {
		layers = opts.PMLLayers
	}
	h := domainH + 2 + 2*layers
	w := domainW + 2 + 2*layers
	minSpan := MinInteriorSpan(layers)
	if h < minSpan || w < minSpan {
		return nil, &SizeError{H: h, W: w, MinSpan: minSpan, Layers: layers}
	}
	size := h * w
	g := &Grid{
		H: h, W: w, opts: opts,
		Type: make([]cellkind.CellKind, size),
		Dx:   make([]float64, size),
		Dy:   make([]float64, size),
		Dp:   make([]float64, size),
	}
	for i := 0; i < 2; i++ {
		g.p[i] = make([]float64, size)
		g.vx[i] = make([]float64, size)
		g.vy[i] = make([]float64, size)
	}
	for i := range g.Dx {
		g.Dx[i], g.Dy[i], g.Dp[i] = 1, 1, 1
	}
	g.stampFrame(layers)
	return g, nil
}

// SizeError reports a grid frame too small to hold its PML padding.
type SizeError struct {
	H, W, MinSpan, Layers int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("grid: frame %dx%d is smaller than the minimum %d required for %d PML layers",
		e.H, e.W, e.MinSpan, e.Layers)
}

// stampFrame marks the outer Dead ring and, if configured, the graded
// PML rings inward from it. Geometry builders run after this and may
// overwrite any of these cells (geometry always wins).
func (g *Grid) stampFrame(layers int) {
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			ring := ringDepth(r, c, g.H, g.W)
			idx := r*g.W + c
			switch {
			case ring == 0:
				g.Type[idx] = cellkind.Dead
			case layers > 0 && ring <= layers:
				// ring 1 is outermost PML (index L-1), ring L is
				// innermost (index 0), per spec.md §3.
				g.Type[idx] = cellkind.Pml(layers - ring)
			default:
				g.Type[idx] = cellkind.Air
			}
		}
	}
}

// ringDepth returns how many rings in from the nearest edge (r, c) sits;
// 0 for the outermost ring.
func ringDepth(r, c, h, w int) int {
	d := r
	if v := h - 1 - r; v < d {
		d = v
	}
	if v := c; v < d {
		d = v
	}
	if v := w - 1 - c; v < d {
		d = v
	}
	return d
}

// Index converts (r, c) to a flat offset.
func (g *Grid) Index(r, c int) int { return r*g.W + c }

// P returns the current pressure value at (r, c).
func (g *Grid) P(r, c int) float64 { return g.p[g.cur][g.Index(r, c)] }

// Vx returns the current x-face velocity at (r, c).
func (g *Grid) Vx(r, c int) float64 { return g.vx[g.cur][g.Index(r, c)] }

// Vy returns the current y-face velocity at (r, c).
func (g *Grid) Vy(r, c int) float64 { return g.vy[g.cur][g.Index(r, c)] }

// PSlice / PNextSlice (and the Vx, Vy pairs) expose the "current" and
// "next" halves of each double buffer; the FDTD engine writes into the
// "next" half mid-step, before Swap promotes it.
func (g *Grid) PSlice() []float64     { return g.p[g.cur] }
func (g *Grid) PNextSlice() []float64 { return g.p[1-g.cur] }

func (g *Grid) VxSlice() []float64     { return g.vx[g.cur] }
func (g *Grid) VxNextSlice() []float64 { return g.vx[1-g.cur] }

func (g *Grid) VySlice() []float64     { return g.vy[g.cur] }
func (g *Grid) VyNextSlice() []float64 { return g.vy[1-g.cur] }

// SetType sets the cell kind at (r, c). Geometry builders call this
// during construction; it must not be called once the simulation starts
// stepping.
func (g *Grid) SetType(r, c int, k cellkind.CellKind) {
	g.Type[g.Index(r, c)] = k
}

// At returns the cell kind at (r, c).
func (g *Grid) At(r, c int) cellkind.CellKind {
	return g.Type[g.Index(r, c)]
}

// SetCurr seeds the current P/Vx/Vy buffers at (r, c); used by tests and
// by geometry builders that want a non-quiescent initial condition.
func (g *Grid) SetCurr(r, c int, p, vx, vy float64) {
	idx := g.Index(r, c)
	g.p[g.cur][idx] = p
	g.vx[g.cur][idx] = vx
	g.vy[g.cur][idx] = vy
}

// Swap promotes the "next" half of the double buffer to "current" by
// flipping an index, matching the teacher's pointer-swap discipline
// (wave_field.go's swap()) rather than a physical copy.
func (g *Grid) Swap() {
	g.cur = 1 - g.cur
}

// ZeroBorder forces P, Vx, Vy to zero on the outermost Dead ring of the
// "next" buffers, preserving cell types (spec.md §4.5 phase 9).
func (g *Grid) ZeroBorder() {
	pn, vxn, vyn := g.PNextSlice(), g.VxNextSlice(), g.VyNextSlice()
	for c := 0; c < g.W; c++ {
		top := g.Index(0, c)
		bottom := g.Index(g.H-1, c)
		pn[top], vxn[top], vyn[top] = 0, 0, 0
		pn[bottom], vxn[bottom], vyn[bottom] = 0, 0, 0
	}
	for r := 1; r < g.H-1; r++ {
		left := g.Index(r, 0)
		right := g.Index(r, g.W-1)
		pn[left], vxn[left], vyn[left] = 0, 0, 0
		pn[right], vxn[right], vyn[right] = 0, 0, 0
	}
}
