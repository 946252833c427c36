package observer

import (
	"math"
	"testing"

	"tubesim/cellkind"
	"tubesim/grid"
)

func TestListenerAppendOnly(t *testing.T) {
	l := NewListener(grid.Point{R: 3, C: 4})
	l.Append(1.5)
	l.Append(-2.0)
	got := l.Samples()
	if len(got) != 2 || got[0] != 1.5 || got[1] != -2.0 {
		t.Fatalf("Samples() = %v", got)
	}
}

func TestSnapshotMarksWalls(t *testing.T) {
	p := []float64{1, 2, 3}
	types := []cellkind.CellKind{cellkind.Air, cellkind.Wall, cellkind.Air}
	snap := Snapshot(p, types)
	if snap[0] != 1 || snap[2] != 3 {
		t.Fatalf("air cells altered: %v", snap)
	}
	if !math.IsNaN(snap[1]) {
		t.Fatalf("wall cell = %v, want WallSentinel (NaN)", snap[1])
	}
}

func TestNullVisualizerNoops(t *testing.T) {
	var v Visualizer = NullVisualizer{}
	v.Snapshot(0, nil, nil) // must not panic
}
