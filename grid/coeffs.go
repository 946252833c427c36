package grid

import "tubesim/cellkind"

// DeriveCoefficients populates the per-cell derived fields (spec.md §4.4)
// from the finalized Type plane: MinBetaX/Y, MaxSigmaDtX/Y, SigmaDtP, and
// the fused velocity constants β²Δt/ρ per axis. It is a one-pass,
// allocate-once operation, called exactly once after geometry is final
// and before the first FDTD step — never during stepping.
//
// Face convention: the x-face coefficient at (r, c) uses the right
// neighbor (r, c+1); the y-face coefficient uses the *upper* neighbor
// (r-1, c), since row 0 is the top of the grid and Vy is stored on a
// cell's top face (spec.md §4.4, §9 "Staggered grid conventions").
func (g *Grid) DeriveCoefficients(reg *cellkind.Registry, rho, c, dt, dx float64) {
	size := g.H * g.W
	g.MinBetaX = make([]float64, size)
	g.MinBetaY = make([]float64, size)
	g.MaxSigmaDtX = make([]float64, size)
	g.MaxSigmaDtY = make([]float64, size)
	g.SigmaDtP = make([]float64, size)
	g.BetaSqDtOverRhoX = make([]float64, size)
	g.BetaSqDtOverRhoY = make([]float64, size)
	g.RhoCSqDtOverDx = rho * c * c * dt / dx

	dtOverRho := dt / rho

	for r := 1; r < g.H-1; r++ {
		for col := 1; col < g.W-1; col++ {
			idx := g.Index(r, col)
			self := reg.Coefficients(g.Type[idx])

			rightIdx := g.Index(r, col+1)
			right := reg.Coefficients(g.Type[rightIdx])
			upIdx := g.Index(r-1, col)
			up := reg.Coefficients(g.Type[upIdx])

			minBetaX := min(self.Beta, right.Beta)   // builtin min (go1.21+)
			minBetaY := min(self.Beta, up.Beta)
			maxSigmaX := max(self.SigmaDt, right.SigmaDt) // builtin max (go1.21+)
			maxSigmaY := max(self.SigmaDt, up.SigmaDt)

			g.MinBetaX[idx] = minBetaX
			g.MinBetaY[idx] = minBetaY
			g.MaxSigmaDtX[idx] = maxSigmaX
			g.MaxSigmaDtY[idx] = maxSigmaY
			g.SigmaDtP[idx] = self.SigmaDt
			g.BetaSqDtOverRhoX[idx] = minBetaX * minBetaX * dtOverRho
			g.BetaSqDtOverRhoY[idx] = minBetaY * minBetaY * dtOverRho
		}
	}
}
