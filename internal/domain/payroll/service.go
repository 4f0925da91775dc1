package payroll

import (
	"context"

	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// RunPayroll processes the given period: it snapshots every eligible
// employee's salary into a payslip and records the run with its summary.
// The summary is accumulated in the same pass that builds the snapshots.
func (s *Service) RunPayroll(ctx context.Context, month, year int, initiatorID string) (Run, error) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return Run{}, ErrInvalidPeriod
	}

	exists, err := s.store.RunExists(ctx, month, year)
	if err != nil {
		return Run{}, err
	}
	if exists {
		return Run{}, ErrDuplicateRun
	}

	eligible, err := s.store.ListEligibleEmployees(ctx)
	if err != nil {
		return Run{}, err
	}
	if len(eligible) == 0 {
		return Run{}, ErrNoEligibleEmployees
	}

	slips := make([]Payslip, 0, len(eligible))
	var totalNet money.Paise
	for _, emp := range eligible {
		slip := BuildPayslip(emp, month, year)
		totalNet += slip.NetPay
		slips = append(slips, slip)
	}

	run := Run{
		Month:         month,
		Year:          year,
		Status:        StatusProcessed,
		EmployeeCount: len(slips),
		TotalNet:      totalNet,
		ProcessedBy:   initiatorID,
	}
	if err := s.store.CreateRunWithPayslips(ctx, &run, slips); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Service) ListRuns(ctx context.Context) ([]Run, error) {
	return s.store.ListRuns(ctx)
}

// ListPayslipsForRun returns the run's payslips in full-name order. An
// unknown run is ErrNotFound; a run with no payslips cannot occur, but an
// empty list would still be a valid response.
func (s *Service) ListPayslipsForRun(ctx context.Context, runID string) ([]Payslip, error) {
	if _, err := s.store.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.store.ListPayslipsForRun(ctx, runID)
}

func (s *Service) ListMyPayslips(ctx context.Context, userID string) ([]Payslip, error) {
	return s.store.ListPayslipsForUser(ctx, userID)
}

func (s *Service) PayslipForUser(ctx context.Context, payslipID, userID string) (Payslip, UserIdentity, error) {
	return s.store.GetPayslipForUser(ctx, payslipID, userID)
}
