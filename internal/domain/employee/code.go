package employee

import (
	"fmt"
	"regexp"
	"strconv"
)

const firstEmployeeCode = "HTEMP101"

var codePattern = regexp.MustCompile(`^HTEMP(\d+)$`)

// NextCode returns the employee code following lastCode. Codes run
// HTEMP101, HTEMP102, ... A missing or unparseable last code restarts the
// sequence at HTEMP101.
func NextCode(lastCode string) string {
	match := codePattern.FindStringSubmatch(lastCode)
	if match == nil {
		return firstEmployeeCode
	}
	last, err := strconv.Atoi(match[1])
	if err != nil {
		return firstEmployeeCode
	}
	return fmt.Sprintf("HTEMP%d", last+1)
}
