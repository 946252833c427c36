// Package fdtd implements the per-step update of the staggered
// pressure/velocity field (spec §4.5): nine ordered phases, the row-wide
// ones parallelized across a persistent row-chunked worker pool generalized
// from the teacher's worker.go/masks.go sync.Cond pool combined with
// main.go's stepWave row partitioning.
package fdtd

import (
	"math"

	"tubesim/cellkind"
	"tubesim/grid"
	"tubesim/physics"
	"tubesim/source"
)

// epsilon is the denominator floor phase 8 clamps to. The coefficient
// registry guarantees minβ+maxσ′Δt>0 for every reachable cell pair; this
// is a defensive backstop, not load-bearing (DESIGN.md Open Question 2).
const epsilon = 1e-12

// Engine owns one Grid and steps it forward in time. It is built once per
// simulation run and is not safe for concurrent Step calls.
type Engine struct {
	grid *grid.Grid
	reg  *cellkind.Registry
	phys physics.Constants

	deltaX, deltaY float64
	rhoCSqDtOverDx float64
	zInv           float64

	listener grid.Point
	source   source.Region

	masks *impedanceMasks
	pool  *workerPool

	// Scratch planes, allocated once, reused every step.
	cxVx, cyVy []float64
	cxP, cyP   []float64
}

// New builds an Engine for g, using reg's coefficient table, phys's
// constants, and a deltaX×deltaY grid spacing. g.DeriveCoefficients must
// already have been called. workers is the number of persistent
// goroutines to partition interior rows across (runtime.NumCPU() is the
// typical caller choice, mirroring main.go's stepWave).
func New(g *grid.Grid, reg *cellkind.Registry, phys physics.Constants, deltaX, deltaY float64, listener grid.Point, region source.Region, workers int) *Engine {
	size := g.H * g.W
	s := math.Sqrt(1 - phys.Alpha)
	zn := phys.Rho * phys.C * (1 + s) / (1 - s)

	return &Engine{
		grid: g, reg: reg, phys: phys,
		deltaX: deltaX, deltaY: deltaY,
		rhoCSqDtOverDx: g.RhoCSqDtOverDx,
		zInv:           1 / zn,
		listener:       listener,
		source:         region,
		masks:          buildImpedanceMasks(g, reg),
		pool:           newWorkerPool(1, g.H-2, workers),
		cxVx:           make([]float64, size),
		cyVy:           make([]float64, size),
		cxP:            make([]float64, size),
		cyP:            make([]float64, size),
	}
}

// Listener returns the full-grid coordinate Step probes every call.
func (e *Engine) Listener() grid.Point { return e.listener }

// Step executes one time step: the nine ordered phases of spec §4.5,
// injecting `sample` as this step's excitation value E[T]. It returns the
// probed listener pressure, or a *NumericError if any plane went
// non-finite (the step's output is then discarded, per spec §7).
func (e *Engine) Step(sample float64) (float64, error) {
	g := e.grid
	pCur, pNext := g.PSlice(), g.PNextSlice()
	vxCur, vxNext := g.VxSlice(), g.VxNextSlice()
	vyCur, vyNext := g.VySlice(), g.VyNextSlice()

	// Phase 1: pressure divergence input.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				leftIdx := g.Index(r, c-1)
				downIdx := g.Index(r+1, c)
				e.cxVx[idx] = vxCur[idx]*g.Dx[idx] - vxCur[leftIdx]*g.Dx[leftIdx]
				e.cyVy[idx] = vyCur[idx]*g.Dy[idx] - vyCur[downIdx]*g.Dy[downIdx]
			}
		}
	})

	// Phase 2: pressure update.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				num := pCur[idx]*g.Dp[idx] - e.rhoCSqDtOverDx*(e.cxVx[idx]+e.cyVy[idx])
				pNext[idx] = num / ((1 + g.SigmaDtP[idx]) * g.Dp[idx])
			}
		}
	})

	// Phase 3: Dirichlet zero-pressure cells.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				if g.Type[idx] == cellkind.NoPressure {
					pNext[idx] = 0
				}
			}
		}
	})

	// Phase 4: pressure gradient.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				rightIdx := g.Index(r, c+1)
				upIdx := g.Index(r-1, c)
				e.cxP[idx] = (pNext[rightIdx] - pNext[idx]) / e.deltaX
				e.cyP[idx] = (pNext[upIdx] - pNext[idx]) / e.deltaY
			}
		}
	})

	// Phase 5: velocity pre-update.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				vxNext[idx] = g.MinBetaX[idx]*vxCur[idx] - g.BetaSqDtOverRhoX[idx]*e.cxP[idx]
				vyNext[idx] = g.MinBetaY[idx]*vyCur[idx] - g.BetaSqDtOverRhoY[idx]*e.cyP[idx]
			}
		}
	})

	// Phase 6: source injection. Touches only the excitation region's
	// handful of cells, so it runs sequentially rather than through the
	// pool.
	e.injectSource(vxNext, vyNext, sample)

	// Phase 7: locally-reacting impedance.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				if e.masks.applyX[idx] {
					rightIdx := g.Index(r, c+1)
					vxNext[idx] += impedanceVelocity(e.zInv, e.masks.nX[idx],
						e.masks.betaSelfX[idx], e.masks.betaNeighX[idx],
						g.MaxSigmaDtX[idx], pNext[idx], pNext[rightIdx])
				}
				if e.masks.applyY[idx] {
					upIdx := g.Index(r-1, c)
					vyNext[idx] += impedanceVelocity(e.zInv, e.masks.nY[idx],
						e.masks.betaSelfY[idx], e.masks.betaNeighY[idx],
						g.MaxSigmaDtY[idx], pNext[idx], pNext[upIdx])
				}
			}
		}
	})

	// Phase 8: normalize.
	e.pool.run(func(rowLo, rowHi int) {
		for r := rowLo; r <= rowHi; r++ {
			for c := 1; c < g.W-1; c++ {
				idx := g.Index(r, c)
				denomX := g.MinBetaX[idx] + g.MaxSigmaDtX[idx]
				if denomX < epsilon {
					denomX = epsilon
				}
				denomY := g.MinBetaY[idx] + g.MaxSigmaDtY[idx]
				if denomY < epsilon {
					denomY = epsilon
				}
				vxNext[idx] /= denomX
				vyNext[idx] /= denomY
			}
		}
	})

	// Phase 9: border wipe.
	g.ZeroBorder()

	if err := e.checkFinite(pNext, vxNext, vyNext); err != nil {
		return 0, err
	}

	out := pNext[g.Index(e.listener.R, e.listener.C)]
	g.Swap()
	return out, nil
}

// injectSource implements spec §4.5 phase 6: for each Excitation cell,
// every outgoing face to a non-Excitation neighbor receives
// E[T]·weight_face·maxσ′Δt_face.
func (e *Engine) injectSource(vxNext, vyNext []float64, sample float64) {
	g := e.grid
	dir := e.source.Dir
	for _, p := range e.source.Cells {
		idx := g.Index(p.R, p.C)
		if p.C+1 < g.W {
			rightIdx := g.Index(p.R, p.C+1)
			if g.Type[rightIdx] != cellkind.Excitation {
				vxNext[idx] += sample * float64(dir[source.DirRight]) * g.MaxSigmaDtX[idx]
			}
		}
		if p.C-1 >= 0 {
			leftIdx := g.Index(p.R, p.C-1)
			if g.Type[leftIdx] != cellkind.Excitation {
				vxNext[leftIdx] += sample * float64(dir[source.DirLeft]) * g.MaxSigmaDtX[leftIdx]
			}
		}
		if p.R-1 >= 0 {
			upIdx := g.Index(p.R-1, p.C)
			if g.Type[upIdx] != cellkind.Excitation {
				vyNext[idx] += sample * float64(dir[source.DirUp]) * g.MaxSigmaDtY[idx]
			}
		}
		if p.R+1 < g.H {
			downIdx := g.Index(p.R+1, p.C)
			if g.Type[downIdx] != cellkind.Excitation {
				vyNext[downIdx] += sample * float64(dir[source.DirDown]) * g.MaxSigmaDtY[downIdx]
			}
		}
	}
}
