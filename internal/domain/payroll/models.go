package payroll

import (
	"time"

	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

// Run is one payroll execution for a (month, year) period. The period is
// the run's identity; the database enforces at most one run per period.
// A run is written once and never mutated by the engine.
type Run struct {
	ID            string
	Month         int
	Year          int
	Status        string
	EmployeeCount int
	TotalNet      money.Paise
	ProcessedBy   string
	CreatedAt     time.Time
}

// Payslip is an immutable per-user, per-period record. Identity and
// salary fields are copies taken at run time; later edits to the employee
// do not reach back into it.
type Payslip struct {
	ID           string
	RunID        string
	UserID       string
	Month        int
	Year         int
	EmployeeCode string
	FullName     string
	Department   string
	Designation  string
	Salary       employee.SalaryStructure
	Gross        money.Paise
	NetPay       money.Paise
	CreatedAt    time.Time
}

// EligibleEmployee is the read-only view of an active employee with an
// active linked user, as gathered for a run.
type EligibleEmployee struct {
	EmployeeID   string
	UserID       string
	EmployeeCode string
	FullName     string
	Department   string
	Designation  string
	Salary       employee.SalaryStructure
}

// UserIdentity is the payslip owner as needed by the PDF renderer.
type UserIdentity struct {
	ID       string
	FullName string
	Email    string
}
