// Package readfilestest writes synthetic OpenFOAM case directories for tests
// of packages that consume whole cases.
package readfilestest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/foampost/readfiles"
)

// Case describes a synthetic OpenFOAM case that can be written to disk.
type Case struct {
	Name           string
	InletMagnitude float64
	Yaw            float64
	EndTime        string
	Rotating       bool
	SimulationType string
	Model          string
	XCoords        []float64 // bin centres, one bin force row is written when set
	Cd, Cl         []float64 // per bin values for the bin force row
}

// Write creates the case directory below root.
func (tc Case) Write(root string) (err error) {
	var (
		ground = "slip"
	)
	if tc.Rotating {
		ground = "rotatingWallVelocity"
	}
	files := map[string]string{
		readfiles.CaseSetupFile: fmt.Sprintf("[GEOM]\nINLETMAG = 0\n\n[BOUNDARY]\nINLETMAG = %g\nYAW = %g\n",
			tc.InletMagnitude, tc.Yaw),
		readfiles.ControlDictFile: fmt.Sprintf("application     simpleFoam;\nendTime         %s;\n", tc.EndTime),
		readfiles.CasePropertiesFile: fmt.Sprintf("inlet\n{\n    U (%g 0 0);\n}\nwheels\n{\n    type %s;\n}\n",
			tc.InletMagnitude, ground),
		readfiles.TurbulencePropertiesFile: fmt.Sprintf("simulationType %s;\n%sModel %s;\n",
			tc.SimulationType, tc.SimulationType, tc.Model),
	}
	if len(tc.XCoords) > 0 {
		files[filepath.Join(readfiles.BinForceCoeffsDir, tc.EndTime, "coefficient_"+tc.EndTime+".dat")] = tc.binForces()
	}
	for name, content := range files {
		path := readfiles.CasePath(root, tc.Name, name)
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return
		}
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			return
		}
	}
	return
}

func (tc Case) binForces() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteString("# Force coefficient bins\n")
	}
	sb.WriteString("# x co-ords :")
	for _, x := range tc.XCoords {
		sb.WriteString(fmt.Sprintf(" %g", x))
	}
	sb.WriteString("\n# Time")
	for i := range tc.XCoords {
		sb.WriteString(fmt.Sprintf(" bin%d_x bin%d_y bin%d_z", i, i, i))
	}
	sb.WriteString("\n" + tc.EndTime)
	for i := range tc.XCoords {
		sb.WriteString(fmt.Sprintf(" %g 0 %g", tc.Cd[i], tc.Cl[i]))
	}
	sb.WriteString("\n")
	return sb.String()
}
