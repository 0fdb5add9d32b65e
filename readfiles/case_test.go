package readfiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/foampost/types"
)

var caseSetupInput = `
[GEOM_CAR]
INLETMAG = 99.0
BODY = car.stl

[BOUNDARY]
INLETMAG = 20.0
YAW = 2.5
TURB = kOmegaSST

[NUMERICS]
NPROCS = 64
TURB = LES
`

var controlDictInput = `/*--------------------------------*- C++ -*----------------------------------*\
| =========                 |                                                 |
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      ascii;
    class       dictionary;
    object      controlDict;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

application     simpleFoam;

startFrom       latestTime;

stopAt          endTime;

endTime         250;

deltaT          1;
`

var casePropertiesInput = `FoamFile
{
    class       dictionary;
    object      caseProperties;
}

boundaryConditions
{
    inlet
    {
        U        (20 0 0);
    }
    wheels
    {
        type     rotating;
    }
    ground
    {
        type     movingWall;
    }
}
`

var turbulencePropertiesInput = `FoamFile
{
    class       dictionary;
    object      turbulenceProperties;
}

simulationType RAS;

RAS
{
    RASModel        kOmegaSST;
    turbulence      on;
    printCoeffs     on;
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeCase creates a complete case directory and returns its root
func writeCase(t *testing.T, caseName string) (root string) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, CasePath(root, caseName, CaseSetupFile), caseSetupInput)
	writeFile(t, CasePath(root, caseName, ControlDictFile), controlDictInput)
	writeFile(t, CasePath(root, caseName, CasePropertiesFile), casePropertiesInput)
	writeFile(t, CasePath(root, caseName, TurbulencePropertiesFile), turbulencePropertiesInput)
	return
}

func TestReadCaseSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseSetup")
	writeFile(t, path, caseSetupInput)
	cs, err := ReadCaseSetup(path)
	require.NoError(t, err)

	val, ok := cs.Lookup("INLETMAG")
	assert.True(t, ok)
	assert.Equal(t, "20.0", val)

	_, ok = cs.Lookup("UNDEFINED")
	assert.False(t, ok)

	// Geometry sections never contribute
	_, ok = cs.Lookup("BODY")
	assert.False(t, ok)
	for _, e := range cs.Entries {
		assert.NotContains(t, e.Section, "GEOM")
	}

	// First occurrence wins, later ones are kept as shadowed
	val, _ = cs.Lookup("TURB")
	assert.Equal(t, "kOmegaSST", val)
	require.Len(t, cs.Shadowed, 1)
	assert.Equal(t, "NUMERICS", cs.Shadowed[0].Section)

	// Names are case sensitive
	_, ok = cs.Lookup("inletmag")
	assert.False(t, ok)

	of, err := cs.Float("YAW")
	require.NoError(t, err)
	assert.Equal(t, types.SomeFloat(2.5), of)
	of, err = cs.Float("MISSING")
	require.NoError(t, err)
	assert.False(t, of.Valid)
	_, err = cs.Float("TURB")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestReadCaseSetupDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseSetup")
	writeFile(t, path, "[DEFAULT]\nINLETMAG = 20\nYAW = 0\n\n[GEOM]\nINLETMAG = 1\n\n"+
		"[BOUNDARY]\nYAW = 5\n\n[NUMERICS]\nINLETMAG = 30\n")
	cs, err := ReadCaseSetup(path)
	require.NoError(t, err)

	// BOUNDARY inherits INLETMAG before NUMERICS defines its own
	val, ok := cs.Lookup("INLETMAG")
	assert.True(t, ok)
	assert.Equal(t, "20", val)
	val, _ = cs.Lookup("YAW")
	assert.Equal(t, "5", val)
	require.Len(t, cs.Shadowed, 1)
	assert.Equal(t, CaseSetupEntry{Section: "NUMERICS", Name: "INLETMAG", Value: "30"}, cs.Shadowed[0])

	// Defaults alone are not a section
	writeFile(t, path, "[DEFAULT]\nINLETMAG = 20\n")
	cs, err = ReadCaseSetup(path)
	require.NoError(t, err)
	_, ok = cs.Lookup("INLETMAG")
	assert.False(t, ok)
}

func TestReadCaseSetupOnlyGeom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseSetup")
	writeFile(t, path, "[GEOM]\nINLETMAG = 20.0\n")
	cs, err := ReadCaseSetup(path)
	require.NoError(t, err)
	assert.Empty(t, cs.Entries)
	_, ok := cs.Lookup("INLETMAG")
	assert.False(t, ok)
}

func TestReadControlDict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controlDict")
	writeFile(t, path, controlDictInput)
	cd, err := ReadControlDict(path)
	require.NoError(t, err)
	assert.Equal(t, "250", cd.EndTime)
	assert.Equal(t, "simpleFoam", cd.Application)

	writeFile(t, path, "endTime 0.25;\napplication pimpleFoam;\n")
	cd, err = ReadControlDict(path)
	require.NoError(t, err)
	assert.Equal(t, "0.25", cd.EndTime)
	assert.Equal(t, "pimpleFoam", cd.Application)

	writeFile(t, path, "endTime   ;\napplication simpleFoam;\n")
	_, err = ReadControlDict(path)
	var mle *MalformedLineError
	require.True(t, errors.As(err, &mle))
	assert.Equal(t, "endTime", mle.Field)
	assert.Equal(t, 1, mle.LineNo)
	assert.Equal(t, path, mle.Path)

	writeFile(t, path, "endTime 100;\n")
	_, err = ReadControlDict(path)
	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "application", mfe.Field)

	writeFile(t, path, "endTime 100;\napplication simpleFoam\n")
	_, err = ReadControlDict(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestReadCaseProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseProperties")
	writeFile(t, path, casePropertiesInput)
	cp, err := ReadCaseProperties(path)
	require.NoError(t, err)
	assert.True(t, cp.MovingGround)

	writeFile(t, path, "ground\n{\n    type slip;\n}\n// rotating wheels disabled\n")
	cp, err = ReadCaseProperties(path)
	require.NoError(t, err)
	assert.False(t, cp.MovingGround)

	// Rotating wheel boundary conditions contain the token
	writeFile(t, path, "wheels\n{\n    type rotatingWallVelocity;\n    omega 100;\n}\n")
	cp, err = ReadCaseProperties(path)
	require.NoError(t, err)
	assert.True(t, cp.MovingGround)
}

func TestReadTurbulenceProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turbulenceProperties")
	writeFile(t, path, "simulationType RAS;\nRASModel kOmegaSST;\n")
	tp, err := ReadTurbulenceProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "RAS", tp.SimulationType)
	assert.Equal(t, "kOmegaSST", tp.TurbulenceModel)

	writeFile(t, path, turbulencePropertiesInput)
	tp, err = ReadTurbulenceProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "kOmegaSST", tp.TurbulenceModel)

	// The model matching simulationType wins regardless of file order
	writeFile(t, path, "simulationType LES;\nLESModel WALE;\nRASModel kEpsilon;\n")
	tp, err = ReadTurbulenceProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "LES", tp.SimulationType)
	assert.Equal(t, "WALE", tp.TurbulenceModel)

	// Sub-dictionary layout
	writeFile(t, path, `simulationType  LES;
LES
{
    model           Smagorinsky;
    delta           cubeRootVol;
    SmagorinskyCoeffs
    {
        model       ignored;
    }
}
`)
	tp, err = ReadTurbulenceProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "Smagorinsky", tp.TurbulenceModel)

	writeFile(t, path, "simulationType laminar;\n")
	tp, err = ReadTurbulenceProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "laminar", tp.TurbulenceModel)

	writeFile(t, path, "simulationType RAS;\nLESModel WALE;\n")
	_, err = ReadTurbulenceProperties(path)
	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "RASModel", mfe.Field)

	writeFile(t, path, "RASModel kOmegaSST;\n")
	_, err = ReadTurbulenceProperties(path)
	assert.ErrorIs(t, err, ErrMissingField)

	writeFile(t, path, "simulationType RAS\nRASModel kOmegaSST;\n")
	_, err = ReadTurbulenceProperties(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseCase(t *testing.T) {
	root := writeCase(t, "042_half")
	cm, err := ParseCase(root, "042_half")
	require.NoError(t, err)
	assert.Equal(t, "042_half", cm.Case)
	assert.Equal(t, types.SomeFloat(20), cm.InletMagnitude)
	assert.Equal(t, types.SomeFloat(2.5), cm.Yaw)
	assert.Equal(t, "250", cm.EndTime)
	assert.Equal(t, "simpleFoam", cm.Application)
	assert.True(t, cm.MovingGround)
	assert.Equal(t, "RAS", cm.SimulationType)
	assert.Equal(t, "kOmegaSST", cm.TurbulenceModel)
	assert.Equal(t, types.HalfCar, cm.Symmetry)
}

func TestParseCaseMissingControlDict(t *testing.T) {
	root := writeCase(t, "001")
	missing := CasePath(root, "001", ControlDictFile)
	require.NoError(t, os.Remove(missing))

	_, err := ParseCase(root, "001")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
	var mfe *MissingFileError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, missing, mfe.Path)
	assert.Contains(t, err.Error(), "controlDict")
}

func TestParseCaseFields(t *testing.T) {
	{ // Missing inlet magnitude is an upstream error
		root := writeCase(t, "002")
		writeFile(t, CasePath(root, "002", CaseSetupFile), "[BOUNDARY]\nYAW = 0\n")
		_, err := ParseCase(root, "002")
		var mfe *MissingFieldError
		require.True(t, errors.As(err, &mfe))
		assert.Equal(t, InletMagnitudeKey, mfe.Field)
	}
	{ // Missing yaw is a legitimate case state
		root := writeCase(t, "003")
		writeFile(t, CasePath(root, "003", CaseSetupFile), "[BOUNDARY]\nINLETMAG = 40\n")
		cm, err := ParseCase(root, "003")
		require.NoError(t, err)
		assert.False(t, cm.Yaw.Valid)
		assert.Equal(t, 40., cm.InletMagnitude.Value)
		assert.Equal(t, types.FullCar, cm.Symmetry)
	}
	{ // Non numeric values are malformed
		root := writeCase(t, "004")
		writeFile(t, CasePath(root, "004", CaseSetupFile), "[BOUNDARY]\nINLETMAG = fast\n")
		_, err := ParseCase(root, "004")
		assert.ErrorIs(t, err, ErrMalformedLine)
	}
}
