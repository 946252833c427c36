package fdtd

import (
	"tubesim/cellkind"
	"tubesim/grid"
)

const invSqrt2 = 0.70710678118654752440

// impedanceMasks precomputes, for every interior cell and both axes,
// whether phase 7's locally-reacting wall term applies to that face and
// the static quantities the term needs (the two cells' β, and the corner
// factor N). Built once from the finalized Type plane; the hot loop only
// touches arithmetic.
type impedanceMasks struct {
	applyX, applyY         []bool
	nX, nY                 []float64
	betaSelfX, betaNeighX  []float64
	betaSelfY, betaNeighY  []float64
}

// qualifies reports whether the face between a and b is a locally-reacting
// wall face per spec §4.5 phase 7: exactly one side is Air, the other is
// neither Air nor a PML layer, and neither side is Excitation.
func qualifies(a, b cellkind.CellKind) bool {
	aAir, bAir := a == cellkind.Air, b == cellkind.Air
	if aAir == bAir {
		return false
	}
	other := a
	if aAir {
		other = b
	}
	if other == cellkind.Excitation {
		return false
	}
	if _, ok := cellkind.IsPml(other); ok {
		return false
	}
	return true
}

func buildImpedanceMasks(g *grid.Grid, reg *cellkind.Registry) *impedanceMasks {
	size := g.H * g.W
	m := &impedanceMasks{
		applyX: make([]bool, size), applyY: make([]bool, size),
		nX: make([]float64, size), nY: make([]float64, size),
		betaSelfX: make([]float64, size), betaNeighX: make([]float64, size),
		betaSelfY: make([]float64, size), betaNeighY: make([]float64, size),
	}
	for r := 1; r < g.H-1; r++ {
		for c := 1; c < g.W-1; c++ {
			idx := g.Index(r, c)
			self := g.Type[idx]
			right := g.Type[g.Index(r, c+1)]
			up := g.Type[g.Index(r-1, c)]

			if qualifies(self, right) {
				m.applyX[idx] = true
				m.betaSelfX[idx] = reg.Coefficients(self).Beta
				m.betaNeighX[idx] = reg.Coefficients(right).Beta
			}
			if qualifies(self, up) {
				m.applyY[idx] = true
				m.betaSelfY[idx] = reg.Coefficients(self).Beta
				m.betaNeighY[idx] = reg.Coefficients(up).Beta
			}
		}
	}
	// A cell whose x-face and y-face both qualify sits at a concave
	// corner; both of its impedance faces carry N=1/√2 instead of 1.
	for r := 1; r < g.H-1; r++ {
		for c := 1; c < g.W-1; c++ {
			idx := g.Index(r, c)
			n := 1.0
			if m.applyX[idx] && m.applyY[idx] {
				n = invSqrt2
			}
			if m.applyX[idx] {
				m.nX[idx] = n
			}
			if m.applyY[idx] {
				m.nY[idx] = n
			}
		}
	}
	return m
}

// impedanceVelocity evaluates spec §4.5 phase 7's term for one face:
// z_inv · N · (β_neighbor(1-β_self)·P'_self − β_self(1-β_neighbor)·P'_neighbor),
// scaled by the face's maxσ′Δt.
func impedanceVelocity(zInv, n, betaSelf, betaNeigh, maxSigmaDt, pSelf, pNeighbor float64) float64 {
	term := betaNeigh*(1-betaSelf)*pSelf - betaSelf*(1-betaNeigh)*pNeighbor
	return zInv * n * maxSigmaDt * term
}
