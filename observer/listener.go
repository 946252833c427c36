// Package observer holds the two consumers the FDTD engine feeds every
// step: the listener probe (one sample per step) and the visualization
// sink (a field snapshot every K steps), per spec §4.7. Grounded on the
// teacher's centerAudioStream.SetSample (audio_center.go) for the
// single-cell-probe-per-step shape.
package observer

import "tubesim/grid"

// Listener records one pressure sample per step at a fixed grid cell. Its
// buffer is append-only, matching spec §3's "Lifecycle" invariant.
type Listener struct {
	cell    grid.Point
	samples []float64
}

// NewListener returns a Listener probing `cell`.
func NewListener(cell grid.Point) *Listener {
	return &Listener{cell: cell}
}

// Cell returns the full-grid coordinate this listener probes.
func (l *Listener) Cell() grid.Point { return l.cell }

// Append records the step's probed pressure value.
func (l *Listener) Append(p float64) {
	l.samples = append(l.samples, p)
}

// Samples returns every recorded value so far, in step order.
func (l *Listener) Samples() []float64 { return l.samples }
