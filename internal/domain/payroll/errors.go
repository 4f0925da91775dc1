package payroll

import "errors"

var (
	ErrInvalidPeriod       = errors.New("month must be between 1 and 12 and year a four-digit number")
	ErrDuplicateRun        = errors.New("payroll already processed for this period")
	ErrNoEligibleEmployees = errors.New("no eligible employees to process")
	ErrNotFound            = errors.New("payroll record not found")
)
