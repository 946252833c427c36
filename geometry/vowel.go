package geometry

import (
	"fmt"
	"math"

	"tubesim/cellkind"
	"tubesim/grid"
	"tubesim/source"
)

// sectionLength is L_section, the physical length of one of the 44
// Story/Fant-style area-function sections, in meters. See DESIGN.md's
// Open Question resolution 4.
const sectionLength = 3.96825e-3

// lengthErrorBudget is the relative rounding-error budget Testable
// Property 5 allows between the area function's true length and the
// snapped cell geometry's implied length.
const lengthErrorBudget = 0.02

// LengthError is a non-fatal GeometryError: the snapped tube geometry's
// implied length deviated from the true area-function length by more
// than lengthErrorBudget. The tube is still built and usable.
type LengthError struct {
	Vowel    string
	RelError float64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("geometry: vowel %q tube length rounding error %.2f%% exceeds the %.0f%% budget",
		e.Vowel, e.RelError*100, lengthErrorBudget*100)
}

// VowelTube builds a tube whose cross-section follows a 44-section vocal
// tract area function, per spec §4.3(5). DeltaS (the grid spacing) drives
// every diameter-to-cell-count conversion.
func VowelTube(p Params) (*grid.Grid, grid.Point, source.Region, *LengthError, error) {
	area, ok := vowelAreaFunctions[p.Vowel]
	if !ok {
		return nil, grid.Point{}, source.Region{}, nil, fmt.Errorf("geometry: unknown vowel %q", p.Vowel)
	}
	deltaS := p.DeltaS
	if deltaS <= 0 {
		return nil, grid.Point{}, source.Region{}, nil, fmt.Errorf("geometry: vowel tube requires a positive DeltaS")
	}

	n := make([]int, len(area))
	for i, a := range area {
		diameter := 2 * math.Sqrt(a*1e-4/math.Pi) // cm² -> m², then d = 2*sqrt(A/pi)
		raw := diameter / deltaS
		ni := int(math.Round(raw))
		if ni < 1 {
			ni = 1
		}
		if ni%2 == 0 {
			if raw < float64(ni) {
				ni-- // rounding went up; come back down to stay odd
			} else {
				ni++
			}
		}
		n[i] = ni
	}

	trueLen := float64(len(area)) * sectionLength
	axialCells := int(math.Round(trueLen / deltaS))
	if axialCells < len(area) {
		axialCells = len(area)
	}

	snappedLen := float64(axialCells) * deltaS
	relErr := math.Abs(trueLen-snappedLen) / trueLen
	var lenErr *LengthError
	if relErr > lengthErrorBudget {
		lenErr = &LengthError{Vowel: p.Vowel, RelError: relErr}
	}

	maxRadius := 0
	for _, ni := range n {
		if ni > maxRadius {
			maxRadius = ni
		}
	}
	domainW := axialCells + 2
	domainH := maxRadius + 4

	g, err := newFrame(domainH, domainW, p)
	if err != nil {
		return nil, grid.Point{}, source.Region{}, lenErr, err
	}
	m := margin(p)
	centerRow := m + domainH/2

	// Everything in the domain outside the tube's bore is Wall, so no Air
	// pocket is left cut off from the excitation.
	for r := 0; r < domainH; r++ {
		for c := 0; c < domainW; c++ {
			g.SetType(m+r, m+c, cellkind.Wall)
		}
	}

	section := 0
	cumulative := sectionLength
	prevTop, prevBottom := -1, -1
	for col := 0; col < axialCells; col++ {
		dist := float64(col) * deltaS
		if section < len(area)-1 && dist > cumulative+0.5*deltaS {
			section++
			cumulative += sectionLength
		}
		radius := (n[section]-1)/2 + 1
		top, bottom := centerRow-radius, centerRow+radius
		c := m + 1 + col
		g.SetType(top, c, cellkind.Wall)
		g.SetType(bottom, c, cellkind.Wall)
		for r := top + 1; r < bottom; r++ {
			g.SetType(r, c, cellkind.Air)
		}
		if prevTop != -1 {
			fillWallGap(g, prevTop, top, c)
			fillWallGap(g, prevBottom, bottom, c)
		}
		prevTop, prevBottom = top, bottom
	}

	glottalRadius := (n[0]-1)/2 + 1
	glottalCol := m
	cells := make([]grid.Point, 0, 2*glottalRadius-1)
	for r := centerRow - glottalRadius + 1; r < centerRow+glottalRadius; r++ {
		g.SetType(r, glottalCol, cellkind.Excitation)
		cells = append(cells, grid.Point{R: r, C: glottalCol})
	}
	g.SetType(centerRow-glottalRadius, glottalCol, cellkind.Wall)
	g.SetType(centerRow+glottalRadius, glottalCol, cellkind.Wall)

	lipRadius := (n[len(n)-1]-1)/2 + 1
	lipCol := m + 1 + axialCells
	for r := centerRow - lipRadius; r <= centerRow+lipRadius; r++ {
		g.SetType(r, lipCol, cellkind.NoPressure)
	}

	var dir [4]int8
	dir[source.DirRight] = 1
	listener := grid.Point{R: centerRow, C: m + axialCells}
	return g, listener, source.Region{Cells: cells, Dir: dir}, lenErr, nil
}

// fillWallGap keeps the tube fluid-tight when a wall row jumps by more
// than one cell between adjacent columns, by stamping the intervening
// rows of column `at` as Wall too.
func fillWallGap(g *grid.Grid, prev, cur, at int) {
	lo, hi := prev, cur
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo; r <= hi; r++ {
		g.SetType(r, at, cellkind.Wall)
	}
}
