// Package geometry builds the five concrete scenes spec §4.3 names:
// OpenAir, ClosedTube, VerticalWall, OpenTube, and VowelTube. Each is a
// pure function from Params to a finished Grid plus the listener
// coordinate and excitation region the FDTD engine needs, grounded on the
// teacher's environment.go (generateWalls/trySetWall) for the general
// shape of "walk the frame, stamp cell kinds, don't leave isolated
// pockets".
package geometry

import (
	"tubesim/cellkind"
	"tubesim/grid"
	"tubesim/source"
)

// Params collects every construction parameter across the five scene
// builders. Each builder reads only the fields relevant to its own scene;
// config.Validate rejects combinations that don't make sense together
// before a builder ever runs.
type Params struct {
	DomainH, DomainW int
	PML              bool
	PMLLayers        int

	TubeLength int // ClosedTube, OpenTube
	TubeWidth  int // ClosedTube, OpenTube

	Vowel  string  // VowelTube: "a", "u", or "i"
	DeltaS float64 // grid spacing Δx=Δy in meters; VowelTube converts cm² areas through it
}

func newFrame(h, w int, p Params) (*grid.Grid, error) {
	return grid.New(h, w, grid.Options{PML: p.PML, PMLLayers: p.PMLLayers})
}

// margin is how many full-grid rows/columns separate a domain-local
// coordinate (0,0) from full-grid coordinate (0,0): one Dead ring plus
// however many PML layers are active.
func margin(p Params) int {
	if !p.PML {
		return 1
	}
	return 1 + p.PMLLayers
}

// OpenAir fills the interior with Air and marks a single Excitation cell
// at the center; the listener is that same cell.
func OpenAir(p Params) (*grid.Grid, grid.Point, source.Region, error) {
	g, err := newFrame(p.DomainH, p.DomainW, p)
	if err != nil {
		return nil, grid.Point{}, source.Region{}, err
	}
	m := margin(p)
	for r := 0; r < p.DomainH; r++ {
		for c := 0; c < p.DomainW; c++ {
			g.SetType(m+r, m+c, cellkind.Air)
		}
	}
	center := grid.Point{R: m + p.DomainH/2, C: m + p.DomainW/2}
	g.SetType(center.R, center.C, cellkind.Excitation)

	var dir [4]int8
	dir[source.DirLeft], dir[source.DirDown] = -1, -1
	dir[source.DirRight], dir[source.DirUp] = 1, 1

	return g, center, source.Region{Cells: []grid.Point{center}, Dir: dir}, nil
}

// VerticalWall is open air plus a short vertical wall segment offset from
// the source, used for reflection tests (spec §4.3(3)).
func VerticalWall(p Params) (*grid.Grid, grid.Point, source.Region, error) {
	g, listener, region, err := OpenAir(p)
	if err != nil {
		return nil, grid.Point{}, source.Region{}, err
	}
	m := margin(p)
	segHeight := p.DomainH / 4
	if segHeight < 1 {
		segHeight = 1
	}
	wallCol := m + p.DomainW/2 + p.DomainW/6 + 1
	top := m + p.DomainH/2 - segHeight/2
	for r := top; r < top+segHeight; r++ {
		g.SetType(r, wallCol, cellkind.Wall)
	}
	return g, listener, region, nil
}

// stampTubeBody stamps Wall across the top and bottom rows of a
// TubeWidth+2-tall domain and Air in the interior, leaving column
// boundaries for the caller to finish.
func stampTubeBody(g *grid.Grid, m, domainH, domainW int, leftCol int) {
	for c := leftCol; c < domainW; c++ {
		g.SetType(m, m+c, cellkind.Wall)
		g.SetType(m+domainH-1, m+c, cellkind.Wall)
	}
	for r := 1; r < domainH-1; r++ {
		for c := leftCol; c < domainW-1; c++ {
			g.SetType(m+r, m+c, cellkind.Air)
		}
	}
}

// ClosedTube is a horizontal Air rectangle bounded above, below, and (save
// for its Excitation column) on the glottal side by Wall; the open side
// carries a NoPressure column one cell beyond the tube's end.
func ClosedTube(p Params) (*grid.Grid, grid.Point, source.Region, error) {
	domainH := p.TubeWidth + 2
	domainW := p.TubeLength + 2
	g, err := newFrame(domainH, domainW, p)
	if err != nil {
		return nil, grid.Point{}, source.Region{}, err
	}
	m := margin(p)
	stampTubeBody(g, m, domainH, domainW, 0)

	cells := make([]grid.Point, 0, domainH-2)
	for r := 1; r < domainH-1; r++ {
		pt := grid.Point{R: m + r, C: m}
		g.SetType(pt.R, pt.C, cellkind.Excitation)
		cells = append(cells, pt)
	}
	for r := 1; r < domainH-1; r++ {
		g.SetType(m+r, m+domainW-1, cellkind.NoPressure)
	}

	var dir [4]int8
	dir[source.DirRight] = 1
	listener := grid.Point{R: m + domainH/2, C: m + domainW - 2}
	return g, listener, source.Region{Cells: cells, Dir: dir}, nil
}

// OpenTube is ClosedTube without the left wall: the glottal end is open,
// so its top/bottom walls stop short of column 0 and the Excitation
// column's height is taken directly from TubeWidth rather than inferred
// from wall rows that, on this scene, don't reach that far (spec §9 open
// question).
func OpenTube(p Params) (*grid.Grid, grid.Point, source.Region, error) {
	domainH := p.TubeWidth + 2
	domainW := p.TubeLength + 2
	g, err := newFrame(domainH, domainW, p)
	if err != nil {
		return nil, grid.Point{}, source.Region{}, err
	}
	m := margin(p)
	stampTubeBody(g, m, domainH, domainW, 1)

	cells := make([]grid.Point, 0, p.TubeWidth)
	for i := 0; i < p.TubeWidth; i++ {
		pt := grid.Point{R: m + 1 + i, C: m}
		g.SetType(pt.R, pt.C, cellkind.Excitation)
		cells = append(cells, pt)
	}
	for r := 1; r < domainH-1; r++ {
		g.SetType(m+r, m+domainW-1, cellkind.NoPressure)
	}

	var dir [4]int8
	dir[source.DirRight] = 1
	listener := grid.Point{R: m + domainH/2, C: m + domainW - 2}
	return g, listener, source.Region{Cells: cells, Dir: dir}, nil
}
