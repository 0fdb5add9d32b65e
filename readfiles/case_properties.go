package readfiles

import (
	"strings"
)

const rotatingToken = "rotating"

type CaseProperties struct {
	MovingGround bool
}

// ReadCaseProperties scans system/caseProperties for a rotating wall
// definition, which marks the case as moving ground with rotating wheels.
// Any uncommented occurrence counts, e.g. rotatingWallVelocity.
func ReadCaseProperties(path string) (cp CaseProperties, err error) {
	err = scanDict(path, func(_ int, line string) error {
		if strings.Contains(line, rotatingToken) {
			cp.MovingGround = true
		}
		return nil
	})
	return
}
