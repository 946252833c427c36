package fdtd

import (
	"fmt"
	"math"
)

// NumericError reports a non-finite value in a field plane after a step.
// Per spec §7 it is fatal: the step's output is discarded and the driver
// stops.
type NumericError struct {
	Plane      string
	Row, Col   int
	Value      float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("fdtd: non-finite %s value %v at (%d,%d)", e.Plane, e.Value, e.Row, e.Col)
}

// checkFinite scans the full P, Vx, Vy planes for NaN or Inf, returning
// the first one found.
func (e *Engine) checkFinite(p, vx, vy []float64) error {
	g := e.grid
	scan := func(name string, plane []float64) error {
		for idx, v := range plane {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &NumericError{Plane: name, Row: idx / g.W, Col: idx % g.W, Value: v}
			}
		}
		return nil
	}
	if err := scan("P", p); err != nil {
		return err
	}
	if err := scan("Vx", vx); err != nil {
		return err
	}
	if err := scan("Vy", vy); err != nil {
		return err
	}
	return nil
}
