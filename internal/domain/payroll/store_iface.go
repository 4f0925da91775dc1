package payroll

import "context"

type StoreAPI interface {
	// RunExists is the friendly pre-check; the unique constraint behind
	// CreateRunWithPayslips is the authoritative guard.
	RunExists(ctx context.Context, month, year int) (bool, error)
	ListEligibleEmployees(ctx context.Context) ([]EligibleEmployee, error)
	// CreateRunWithPayslips persists the run record and every payslip in
	// one transaction. A unique-constraint conflict on the period or on
	// any (user, month, year) payslip surfaces as ErrDuplicateRun and
	// leaves nothing behind.
	CreateRunWithPayslips(ctx context.Context, run *Run, slips []Payslip) error

	ListRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, runID string) (Run, error)
	ListPayslipsForRun(ctx context.Context, runID string) ([]Payslip, error)
	ListPayslipsForUser(ctx context.Context, userID string) ([]Payslip, error)
	// GetPayslipForUser resolves a payslip only when it belongs to the
	// given user; absent and foreign payslips are indistinguishable.
	GetPayslipForUser(ctx context.Context, payslipID, userID string) (Payslip, UserIdentity, error)
}
