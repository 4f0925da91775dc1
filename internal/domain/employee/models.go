package employee

import (
	"time"

	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"

	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// SalaryStructure is the employee's current pay breakdown. Components are
// individually optional; an absent component is distinct from an explicit
// zero and contributes nothing to derived amounts.
type SalaryStructure struct {
	CTC        money.Amount
	Basic      money.Amount
	HRA        money.Amount
	Allowances money.Amount
	Deductions money.Amount
}

type Employee struct {
	ID             string
	UserID         string
	EmployeeCode   string
	Department     string
	Designation    string
	EmploymentType string
	DateOfJoining  *time.Time
	Salary         SalaryStructure
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Linked user identity, populated on reads.
	FullName   string
	Email      string
	UserStatus string
}
