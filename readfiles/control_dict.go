package readfiles

import (
	"regexp"
	"strings"
)

var (
	numberRE      = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)
	applicationRE = regexp.MustCompile(`^application\s+([^;\s]+)\s*;`)
)

type ControlDict struct {
	EndTime     string
	Application string
}

// hasKeyword reports whether line starts with keyword followed by blank space
func hasKeyword(line, keyword string) bool {
	if !strings.HasPrefix(line, keyword) {
		return false
	}
	rest := line[len(keyword):]
	return len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t')
}

// ReadControlDict extracts endTime and application from system/controlDict.
// The first occurrence of each keyword is used.
func ReadControlDict(path string) (cd ControlDict, err error) {
	var haveEnd, haveApp bool
	err = scanDict(path, func(lineNo int, line string) error {
		line = strings.TrimSpace(line)
		switch {
		case hasKeyword(line, "endTime"):
			if haveEnd {
				return nil
			}
			tok := numberRE.FindString(line[len("endTime"):])
			if tok == "" {
				return &MalformedLineError{Path: path, Field: "endTime", Line: line, LineNo: lineNo}
			}
			cd.EndTime, haveEnd = tok, true
		case hasKeyword(line, "application"):
			if haveApp {
				return nil
			}
			m := applicationRE.FindStringSubmatch(line)
			if m == nil {
				return &MalformedLineError{Path: path, Field: "application", Line: line, LineNo: lineNo}
			}
			cd.Application, haveApp = m[1], true
		}
		return nil
	})
	if err != nil {
		return
	}
	if !haveEnd {
		return cd, &MissingFieldError{Path: path, Field: "endTime"}
	}
	if !haveApp {
		return cd, &MissingFieldError{Path: path, Field: "application"}
	}
	return
}
