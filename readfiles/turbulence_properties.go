package readfiles

import (
	"regexp"
	"strings"

	"github.com/notargets/foampost/types"
)

var (
	simulationTypeRE = regexp.MustCompile(`^simulationType\s+([^;\s]+)\s*;`)
	rasModelRE       = regexp.MustCompile(`^RASModel\s+([^;\s]+)\s*;`)
	lesModelRE       = regexp.MustCompile(`^LESModel\s+([^;\s]+)\s*;`)
	subDictModelRE   = regexp.MustCompile(`^model\s+([^;\s]+)\s*;`)
	subDictRE        = regexp.MustCompile(`^(RAS|LES)\b`)
)

type TurbulenceProperties struct {
	SimulationType  string
	TurbulenceModel string
}

// ReadTurbulenceProperties reads constant/turbulenceProperties. The model is
// taken from the key that matches simulationType: RASModel for RAS, LESModel
// for LES, in either the flat layout or the RAS {} / LES {} sub-dictionary
// layout. A laminar simulation reports the model as laminar.
func ReadTurbulenceProperties(path string) (tp TurbulenceProperties, err error) {
	var (
		models  = make(map[string]string)
		subDict string // RAS or LES while inside that sub-dictionary
		depth   int
	)
	record := func(sim, model string) {
		if _, ok := models[sim]; !ok {
			models[sim] = model
		}
	}
	err = scanDict(path, func(lineNo int, line string) error {
		line = strings.TrimSpace(line)
		switch {
		case hasKeyword(line, "simulationType"):
			m := simulationTypeRE.FindStringSubmatch(line)
			if m == nil {
				return &MalformedLineError{Path: path, Field: "simulationType", Line: line, LineNo: lineNo}
			}
			if tp.SimulationType == "" {
				tp.SimulationType = m[1]
			}
		case hasKeyword(line, "RASModel"):
			m := rasModelRE.FindStringSubmatch(line)
			if m == nil {
				return &MalformedLineError{Path: path, Field: "RASModel", Line: line, LineNo: lineNo}
			}
			record(types.SimRAS, m[1])
		case hasKeyword(line, "LESModel"):
			m := lesModelRE.FindStringSubmatch(line)
			if m == nil {
				return &MalformedLineError{Path: path, Field: "LESModel", Line: line, LineNo: lineNo}
			}
			record(types.SimLES, m[1])
		case depth == 1 && subDict != "" && hasKeyword(line, "model"):
			m := subDictModelRE.FindStringSubmatch(line)
			if m == nil {
				return &MalformedLineError{Path: path, Field: subDict + ".model", Line: line, LineNo: lineNo}
			}
			record(subDict, m[1])
		case depth == 0 && subDictRE.MatchString(line):
			subDict = subDictRE.FindString(line)
		}
		closed := strings.Count(line, "}")
		if depth += strings.Count(line, "{") - closed; depth < 0 {
			depth = 0
		}
		if depth == 0 && closed > 0 {
			subDict = ""
		}
		return nil
	})
	if err != nil {
		return
	}
	if tp.SimulationType == "" {
		return tp, &MissingFieldError{Path: path, Field: "simulationType"}
	}
	switch tp.SimulationType {
	case types.SimLaminar:
		tp.TurbulenceModel = types.SimLaminar
	case types.SimRAS, types.SimLES:
		model, ok := models[tp.SimulationType]
		if !ok {
			return tp, &MissingFieldError{Path: path, Field: tp.SimulationType + "Model"}
		}
		tp.TurbulenceModel = model
	default:
		return tp, &MalformedLineError{Path: path, Field: "simulationType", Line: "simulationType " + tp.SimulationType + ";"}
	}
	return
}
