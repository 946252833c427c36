// Package cellkind enumerates the acoustic grid's cell kinds and maps each
// one, once at startup, to the (β, σ′Δt) coefficient pair the FDTD engine
// consults every step.
package cellkind

import "fmt"

// CellKind identifies the acoustic behavior of a single grid cell. The set
// is closed: Wall, Air, Excitation, Dead, NoPressure, and L graded Pml
// layers. Adding a new kind means extending this type and Registry's
// coefficient table; no other package should know the numeric values.
type CellKind int32

const (
	// Air is a fully transparent propagation cell.
	Air CellKind = iota
	// Wall is a rigid, non-propagating boundary cell.
	Wall
	// Excitation injects source velocity into its neighbors.
	Excitation
	// Dead anchors the outermost frame ring; effectively frozen.
	Dead
	// NoPressure is a Dirichlet cell whose pressure is forced to zero.
	NoPressure
	// pmlBase is the first reserved value for graded PML layers. Pml(i)
	// returns pmlBase+i, so kinds below it are never mistaken for PML.
	pmlBase
)

// Pml returns the CellKind for PML layer i (0-indexed, 0 is the innermost
// layer bordering Air, L-1 is outermost bordering Dead).
func Pml(i int) CellKind {
	if i < 0 {
		panic("cellkind: negative PML layer index")
	}
	return pmlBase + CellKind(i)
}

// IsPml reports whether k is a graded PML layer, and if so which index.
func IsPml(k CellKind) (layer int, ok bool) {
	if k < pmlBase {
		return 0, false
	}
	return int(k - pmlBase), true
}

func (k CellKind) String() string {
	switch k {
	case Air:
		return "Air"
	case Wall:
		return "Wall"
	case Excitation:
		return "Excitation"
	case Dead:
		return "Dead"
	case NoPressure:
		return "NoPressure"
	default:
		if layer, ok := IsPml(k); ok {
			return fmt.Sprintf("Pml[%d]", layer)
		}
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Coeffs is the (β, σ′Δt) pair a cell kind resolves to.
type Coeffs struct {
	Beta       float64
	SigmaDt    float64
}

// Registry is the once-built, read-only coefficient table. Every
// consulting package (geometry, grid, fdtd) looks values up by CellKind;
// none of them is aware of the underlying constants.
type Registry struct {
	layers     int
	sigmaMax   float64
	dt         float64
	airLike    Coeffs // Air and NoPressure: β=1, σ′Δt=0
	wallLike   Coeffs // Wall and Excitation: β=0, σ′Δt=Δt
	dead       Coeffs
	pml        []Coeffs
}

// deadSigmaDt is the "effectively frozen" damping value for Dead cells
// (spec: 10^6, large enough that the cell never meaningfully updates).
const deadSigmaDt = 1e6

// NewRegistry builds the coefficient table for a simulation configured
// with `layers` PML rings, a maximum PML damping σ_max, and timestep dt.
// The table is computed once; Coefficients never recomputes afterward.
func NewRegistry(layers int, sigmaMax, dt float64) *Registry {
	if layers < 0 {
		layers = 0
	}
	r := &Registry{
		layers:   layers,
		sigmaMax: sigmaMax,
		dt:       dt,
		airLike:  Coeffs{Beta: 1, SigmaDt: 0},
		wallLike: Coeffs{Beta: 0, SigmaDt: dt},
		dead:     Coeffs{Beta: 0, SigmaDt: deadSigmaDt},
	}
	if layers > 0 {
		r.pml = make([]Coeffs, layers)
		for i := 0; i < layers; i++ {
			frac := 0.0
			if layers > 1 {
				frac = float64(i) / float64(layers-1)
			}
			r.pml[i] = Coeffs{Beta: 1, SigmaDt: frac * sigmaMax * dt}
		}
	}
	return r
}

// Layers reports the number of PML rings this registry was built with.
func (r *Registry) Layers() int { return r.layers }

// Coefficients returns the (β, σ′Δt) pair for the given cell kind.
func (r *Registry) Coefficients(k CellKind) Coeffs {
	switch k {
	case Air, NoPressure:
		return r.airLike
	case Wall, Excitation:
		return r.wallLike
	case Dead:
		return r.dead
	default:
		if layer, ok := IsPml(k); ok && layer < len(r.pml) {
			return r.pml[layer]
		}
		// Unreachable for any kind this registry produced; treat as Air
		// rather than panic on the hot path.
		return r.airLike
	}
}
