package source

import "tubesim/grid"

// Direction indices into a Region's Dir vector, matching spec.md §3's
// (left, down, right, up) ordering.
const (
	DirLeft = iota
	DirDown
	DirRight
	DirUp
)

// Region names the set of Excitation cells a geometry builder stamped and
// the per-face injection weights the FDTD engine applies when it encounters
// one of them in phase 6. Weights are in {-1, 0, +1}; 0 means that face
// never receives injected velocity.
type Region struct {
	Cells []grid.Point
	Dir   [4]int8
}
