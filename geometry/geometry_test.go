package geometry

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"tubesim/cellkind"
	"tubesim/grid"
)

func TestOpenAirListenerIsSource(t *testing.T) {
	g, listener, region, err := OpenAir(Params{DomainH: 20, DomainW: 20, PML: true, PMLLayers: 4})
	if err != nil {
		t.Fatalf("OpenAir: %v", err)
	}
	if g.At(listener.R, listener.C) != cellkind.Excitation {
		t.Fatalf("listener cell is %v, want Excitation", g.At(listener.R, listener.C))
	}
	if len(region.Cells) != 1 || region.Cells[0] != listener {
		t.Fatalf("region.Cells = %v, want exactly [%v]", region.Cells, listener)
	}
}

func TestClosedTubeShape(t *testing.T) {
	g, listener, region, err := ClosedTube(Params{TubeLength: 40, TubeWidth: 5, PML: true, PMLLayers: 6})
	if err != nil {
		t.Fatalf("ClosedTube: %v", err)
	}
	if len(region.Cells) == 0 {
		t.Fatal("ClosedTube produced no excitation cells")
	}
	for _, c := range region.Cells {
		if g.At(c.R, c.C) != cellkind.Excitation {
			t.Errorf("region cell (%d,%d) = %v, want Excitation", c.R, c.C, g.At(c.R, c.C))
		}
	}
	if g.At(listener.R, listener.C) != cellkind.Air {
		t.Errorf("listener cell = %v, want Air", g.At(listener.R, listener.C))
	}
	assertNoIsolatedAir(t, g, listener)
}

func TestOpenTubeHasNoLeftWall(t *testing.T) {
	g, _, region, err := OpenTube(Params{TubeLength: 30, TubeWidth: 7, PML: false})
	if err != nil {
		t.Fatalf("OpenTube: %v", err)
	}
	if len(region.Cells) != 7 {
		t.Fatalf("len(region.Cells) = %d, want TubeWidth = 7", len(region.Cells))
	}
	m := margin(Params{})
	if g.At(m, m) == cellkind.Wall {
		t.Errorf("top-left corner is Wall, want open (no left wall)")
	}
}

func TestVerticalWallAddsSegment(t *testing.T) {
	g, _, _, err := VerticalWall(Params{DomainH: 30, DomainW: 30, PML: true, PMLLayers: 4})
	if err != nil {
		t.Fatalf("VerticalWall: %v", err)
	}
	found := false
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.At(r, c) == cellkind.Wall {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("VerticalWall produced no Wall cells")
	}
}

func TestVowelTubeAllThree(t *testing.T) {
	var eg errgroup.Group
	for _, vowel := range []string{"a", "u", "i"} {
		vowel := vowel
		eg.Go(func() error {
			grd, listener, region, lenErr, err := VowelTube(Params{
				Vowel:     vowel,
				PML:       true,
				PMLLayers: 6,
				DeltaS:    4e-3,
			})
			if err != nil {
				return err
			}
			if lenErr != nil && lenErr.RelError > lengthErrorBudget {
				t.Errorf("vowel %s: length error %.4f exceeds budget", vowel, lenErr.RelError)
			}
			if len(region.Cells) == 0 {
				t.Errorf("vowel %s: no excitation cells", vowel)
			}
			if grd.At(listener.R, listener.C) == cellkind.Wall {
				t.Errorf("vowel %s: listener cell is Wall", vowel)
			}
			assertNoIsolatedAir(t, grd, region.Cells[0])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("vowel batch validation: %v", err)
	}
}

// assertNoIsolatedAir flood-fills Air and Excitation cells starting from
// `start` and confirms every Air/Excitation cell in the grid was reached,
// i.e. there are no isolated air pockets (spec §4.3's invariant).
func assertNoIsolatedAir(t *testing.T, g *grid.Grid, start grid.Point) {
	t.Helper()
	visited := make(map[grid.Point]bool)
	queue := []grid.Point{start}
	visited[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			np := grid.Point{R: p.R + d[0], C: p.C + d[1]}
			if np.R < 0 || np.R >= g.H || np.C < 0 || np.C >= g.W || visited[np] {
				continue
			}
			k := g.At(np.R, np.C)
			if k == cellkind.Air || k == cellkind.Excitation {
				visited[np] = true
				queue = append(queue, np)
			}
		}
	}
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			k := g.At(r, c)
			if (k == cellkind.Air || k == cellkind.Excitation) && !visited[grid.Point{R: r, C: c}] {
				t.Errorf("cell (%d,%d) = %v is an isolated air pocket unreachable from %v", r, c, k, start)
				return
			}
		}
	}
}
