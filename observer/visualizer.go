package observer

import (
	"math"

	"tubesim/cellkind"
)

// WallSentinel marks a non-Air cell in a Snapshot's pressure slice. NaN is
// never a valid pressure value, so callers distinguish it with
// math.IsNaN rather than a magic numeric threshold.
var WallSentinel = math.NaN()

// Visualizer receives a pressure-field snapshot every K steps. Cells that
// are not Air carry WallSentinel in p rather than their (meaningless)
// pressure value; types gives the real cell kind for anyone that wants to
// render it distinctly from Air.
type Visualizer interface {
	Snapshot(step int, p []float64, types []cellkind.CellKind)
}

// NullVisualizer discards every snapshot. It is the default for runs that
// don't need visualization, matching spec §1's "the visualization sink is
// abstract" — no concrete GUI lives in this package.
type NullVisualizer struct{}

func (NullVisualizer) Snapshot(int, []float64, []cellkind.CellKind) {}

// Snapshot builds a Visualizer-ready pressure slice from a grid's raw P
// plane and Type plane, substituting WallSentinel for every non-Air cell.
func Snapshot(p []float64, types []cellkind.CellKind) []float64 {
	out := make([]float64, len(p))
	for i, k := range types {
		if k == cellkind.Air {
			out[i] = p[i]
		} else {
			out[i] = WallSentinel
		}
	}
	return out
}
