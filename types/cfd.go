package types

import "strings"

// Coefficient selects one of the binned force coefficients written by the
// solver's binForceCoeffs function object.
type Coefficient uint8

const (
	Cd Coefficient = iota
	Cl
)

var CoefficientNameMap = map[string]Coefficient{
	"cd": Cd,
	"cl": Cl,
}

func (c Coefficient) String() string {
	switch c {
	case Cd:
		return "cd"
	case Cl:
		return "cl"
	}
	return "unknown"
}

// Title is the label used on plot axes and titles
func (c Coefficient) Title() string {
	return strings.ToUpper(c.String()[:1]) + c.String()[1:]
}

// Symmetry of the simulated geometry, derived from the trial name.
type Symmetry uint8

const (
	FullCar Symmetry = iota
	HalfCar
)

func NewSymmetry(trial string) Symmetry {
	if strings.Contains(trial, "_half") {
		return HalfCar
	}
	return FullCar
}

func (s Symmetry) String() string {
	if s == HalfCar {
		return "Half Car"
	}
	return "Full Car"
}

// Scale converts a half model integral into its full vehicle equivalent.
func (s Symmetry) Scale() float64 {
	if s == HalfCar {
		return 2
	}
	return 1
}

// Simulation types recognised in constant/turbulenceProperties
const (
	SimRAS     = "RAS"
	SimLES     = "LES"
	SimLaminar = "laminar"
)
