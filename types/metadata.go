package types

import (
	"strconv"
)

// OptionalFloat is a numeric case parameter that may legitimately be absent
// from the case setup.
type OptionalFloat struct {
	Value float64
	Valid bool
}

func SomeFloat(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

func (of OptionalFloat) String() string {
	if !of.Valid {
		return "-"
	}
	return strconv.FormatFloat(of.Value, 'g', -1, 64)
}

// CaseMetadata is the boundary condition summary of one simulation case.
// It is built once per case and never modified afterwards.
type CaseMetadata struct {
	Case            string
	InletMagnitude  OptionalFloat
	Yaw             OptionalFloat
	EndTime         string
	Application     string
	MovingGround    bool
	SimulationType  string
	TurbulenceModel string
	Symmetry        Symmetry
}

// Tuple returns inlet magnitude, end time, yaw, moving ground, simulation
// type and turbulence model in that order.
func (cm CaseMetadata) Tuple() (inletMag OptionalFloat, endTime string, yaw OptionalFloat,
	movingGround bool, simType, turbModel string) {
	return cm.InletMagnitude, cm.EndTime, cm.Yaw, cm.MovingGround, cm.SimulationType, cm.TurbulenceModel
}
