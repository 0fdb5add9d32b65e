package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/foampost/types"
)

func TestSetupTable(t *testing.T) {
	cases := []types.CaseMetadata{
		{Case: "001", SimulationType: "RAS", InletMagnitude: types.SomeFloat(40), TurbulenceModel: "kOmegaSST",
			MovingGround: true, Yaw: types.SomeFloat(0), Symmetry: types.FullCar},
		{Case: "002_half", SimulationType: "LES", InletMagnitude: types.SomeFloat(40), TurbulenceModel: "WALE",
			Symmetry: types.HalfCar},
	}
	tab := SetupTable(cases)
	assert.Equal(t, "Trial Setup and BC", tab.Title)
	require.Len(t, tab.Rows, 7)
	assert.Equal(t, []string{"Trial", "001", "002_half"}, tab.Rows[0])
	assert.Equal(t, []string{"Run Type", "RAS", "LES"}, tab.Rows[1])
	assert.Equal(t, []string{"Velocity (m/s)", "40", "40"}, tab.Rows[2])
	assert.Equal(t, []string{"Wheel Rot.", "True", "False"}, tab.Rows[4])
	assert.Equal(t, []string{"Yaw Angle (deg)", "0", "-"}, tab.Rows[5])
	assert.Equal(t, []string{"Sym. Cond.", "Full Car", "Half Car"}, tab.Rows[6])
}

func TestResultsTable(t *testing.T) {
	av := NewAverages([]string{"001", "002_half", "003"})
	av.Set(0, []float64{0.3, -0.1, -0.04, -0.06, 0.002, 0.003})
	av.Set(1, []float64{0.165, -0.06, -0.02, -0.04, 0.001, 0.002})
	tab := ResultsTable(av)
	require.Len(t, tab.Rows, 8)
	assert.Equal(t, []string{"Trial", "001", "002_half", "003"}, tab.Rows[0])

	// Baseline column has no deltas
	assert.Equal(t, "0.3000", tab.Rows[1][1])
	assert.Equal(t, "0.0020", tab.Rows[5][1])
	assert.Equal(t, "40.00", tab.Rows[7][1])

	// Half car integrals are doubled before comparing
	assert.Equal(t, "0.3300 (10.00 %)", tab.Rows[1][2])
	assert.Equal(t, "-0.1200 (20.00 %)", tab.Rows[2][2])
	// Confidence intervals are neither scaled nor compared
	assert.Equal(t, "0.0010", tab.Rows[5][2])
	assert.Equal(t, "33.33", tab.Rows[7][2])

	// Missing averages
	for j := 1; j < 8; j++ {
		assert.Equal(t, "-", tab.Rows[j][3])
	}
}

func TestSubtitle(t *testing.T) {
	assert.Equal(t, "001 | 002", Subtitle([]string{"001", "002"}))
}
