// Package physics holds the handful of physical constants every other
// package treats as inputs rather than deriving: air density, sound
// speed, wall reflection coefficient, and the PML's peak damping.
package physics

// Constants are the §6 physical parameters shared by geometry's PML
// grading, grid's coefficient derivation, and the FDTD engine's wall
// impedance term.
type Constants struct {
	Rho      float64 // air density, kg/m^3
	C        float64 // speed of sound, m/s
	Alpha    float64 // wall reflection coefficient
	SigmaMax float64 // peak PML damping
}

// Default returns the literal values spec §6 pins: ρ=1.140 kg/m³,
// c=350 m/s, α=0.008, σ_max=0.5.
func Default() Constants {
	return Constants{
		Rho:      1.140,
		C:        350,
		Alpha:    0.008,
		SigmaMax: 0.5,
	}
}
