package readfiles

import (
	"path/filepath"

	"github.com/notargets/foampost/types"
)

// Locations of the case files relative to a case directory
const (
	CaseSetupFile            = "caseSetup"
	ControlDictFile          = "system/controlDict"
	CasePropertiesFile       = "system/caseProperties"
	TurbulencePropertiesFile = "constant/turbulenceProperties"
)

const (
	InletMagnitudeKey = "INLETMAG"
	YawKey            = "YAW"
)

func CasePath(root, caseName string, elem ...string) string {
	return filepath.Join(append([]string{root, caseName}, elem...)...)
}

// ParseCase reads the case setup, control, case properties and turbulence
// properties files of root/caseName and returns the case metadata. Any
// missing file or required field fails the whole case.
func ParseCase(root, caseName string) (cm types.CaseMetadata, err error) {
	var (
		cs *CaseSetup
		cd ControlDict
		cp CaseProperties
		tp TurbulenceProperties
	)
	if cs, err = ReadCaseSetup(CasePath(root, caseName, CaseSetupFile)); err != nil {
		return
	}
	if cd, err = ReadControlDict(CasePath(root, caseName, ControlDictFile)); err != nil {
		return
	}
	if cp, err = ReadCaseProperties(CasePath(root, caseName, CasePropertiesFile)); err != nil {
		return
	}
	if tp, err = ReadTurbulenceProperties(CasePath(root, caseName, TurbulencePropertiesFile)); err != nil {
		return
	}
	cm = types.CaseMetadata{
		Case:            caseName,
		EndTime:         cd.EndTime,
		Application:     cd.Application,
		MovingGround:    cp.MovingGround,
		SimulationType:  tp.SimulationType,
		TurbulenceModel: tp.TurbulenceModel,
		Symmetry:        types.NewSymmetry(caseName),
	}
	if cm.InletMagnitude, err = cs.Float(InletMagnitudeKey); err != nil {
		return types.CaseMetadata{}, err
	}
	if !cm.InletMagnitude.Valid {
		return types.CaseMetadata{}, &MissingFieldError{Path: cs.Path, Field: InletMagnitudeKey}
	}
	// Yaw is optional, straight line cases often leave it out
	if cm.Yaw, err = cs.Float(YawKey); err != nil {
		return types.CaseMetadata{}, err
	}
	return
}
