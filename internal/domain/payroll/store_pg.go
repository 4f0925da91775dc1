package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) RunExists(ctx context.Context, month, year int) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM payroll_runs WHERE month = $1 AND year = $2)",
		month, year).Scan(&exists)
	return exists, err
}

func (s *Store) ListEligibleEmployees(ctx context.Context) ([]EligibleEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, u.id, e.employee_code, u.full_name,
           COALESCE(e.department, ''), COALESCE(e.designation, ''),
           e.ctc_paise, e.basic_paise, e.hra_paise, e.allowances_paise, e.deductions_paise
    FROM employees e
    JOIN users u ON u.id = e.user_id
    WHERE e.is_active AND u.status = 'active'
    ORDER BY u.full_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eligible []EligibleEmployee
	for rows.Next() {
		var emp EligibleEmployee
		var ctc, basic, hra, allowances, deductions *int64
		if err := rows.Scan(
			&emp.EmployeeID, &emp.UserID, &emp.EmployeeCode, &emp.FullName,
			&emp.Department, &emp.Designation,
			&ctc, &basic, &hra, &allowances, &deductions,
		); err != nil {
			return nil, err
		}
		emp.Salary = employee.SalaryStructure{
			CTC:        money.FromPaisePtr(ctc),
			Basic:      money.FromPaisePtr(basic),
			HRA:        money.FromPaisePtr(hra),
			Allowances: money.FromPaisePtr(allowances),
			Deductions: money.FromPaisePtr(deductions),
		}
		eligible = append(eligible, emp)
	}
	return eligible, rows.Err()
}

// CreateRunWithPayslips writes the run record and all payslips in one
// transaction. The unique constraints on (month, year) and on
// (user_id, month, year) are the idempotency guard: a concurrent run for
// the same period loses here with ErrDuplicateRun and commits nothing.
func (s *Store) CreateRunWithPayslips(ctx context.Context, run *Run, slips []Payslip) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	run.ID = uuid.NewString()
	run.CreatedAt = now

	_, err = tx.Exec(ctx, `
    INSERT INTO payroll_runs (id, month, year, status, employee_count, total_net_paise, processed_by, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
  `, run.ID, run.Month, run.Year, run.Status, run.EmployeeCount, int64(run.TotalNet),
		nullIfEmpty(run.ProcessedBy), run.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	batch := &pgx.Batch{}
	for i := range slips {
		slips[i].ID = uuid.NewString()
		slips[i].RunID = run.ID
		slips[i].CreatedAt = now
		slip := slips[i]
		batch.Queue(`
      INSERT INTO payslips (
        id, run_id, user_id, month, year,
        employee_code, full_name, department, designation,
        ctc_paise, basic_paise, hra_paise, allowances_paise, deductions_paise,
        gross_paise, net_pay_paise, created_at
      ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
    `, slip.ID, slip.RunID, slip.UserID, slip.Month, slip.Year,
			nullIfEmpty(slip.EmployeeCode), nullIfEmpty(slip.FullName),
			nullIfEmpty(slip.Department), nullIfEmpty(slip.Designation),
			slip.Salary.CTC.PaisePtr(), slip.Salary.Basic.PaisePtr(), slip.Salary.HRA.PaisePtr(),
			slip.Salary.Allowances.PaisePtr(), slip.Salary.Deductions.PaisePtr(),
			int64(slip.Gross), int64(slip.NetPay), slip.CreatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	for range slips {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapUniqueViolation(err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const runColumns = "id, month, year, status, employee_count, total_net_paise, COALESCE(processed_by::text, ''), created_at"

func scanRun(row pgx.Row) (Run, error) {
	var run Run
	var totalNet int64
	err := row.Scan(&run.ID, &run.Month, &run.Year, &run.Status,
		&run.EmployeeCount, &totalNet, &run.ProcessedBy, &run.CreatedAt)
	if err != nil {
		return Run{}, err
	}
	run.TotalNet = money.Paise(totalNet)
	return run, nil
}

func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+runColumns+`
    FROM payroll_runs
    ORDER BY year DESC, month DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	run, err := scanRun(s.DB.QueryRow(ctx, `
    SELECT `+runColumns+`
    FROM payroll_runs
    WHERE id = $1
  `, runID))
	if err != nil {
		return Run{}, mapNotFound(err)
	}
	return run, nil
}

const payslipColumns = `
    p.id, p.run_id, p.user_id, p.month, p.year,
    COALESCE(p.employee_code, ''), COALESCE(p.full_name, ''),
    COALESCE(p.department, ''), COALESCE(p.designation, ''),
    p.ctc_paise, p.basic_paise, p.hra_paise, p.allowances_paise, p.deductions_paise,
    p.gross_paise, p.net_pay_paise, p.created_at`

func scanPayslip(row pgx.Row) (Payslip, error) {
	var slip Payslip
	var ctc, basic, hra, allowances, deductions *int64
	var gross, netPay int64
	err := row.Scan(
		&slip.ID, &slip.RunID, &slip.UserID, &slip.Month, &slip.Year,
		&slip.EmployeeCode, &slip.FullName, &slip.Department, &slip.Designation,
		&ctc, &basic, &hra, &allowances, &deductions,
		&gross, &netPay, &slip.CreatedAt,
	)
	if err != nil {
		return Payslip{}, err
	}
	slip.Salary = employee.SalaryStructure{
		CTC:        money.FromPaisePtr(ctc),
		Basic:      money.FromPaisePtr(basic),
		HRA:        money.FromPaisePtr(hra),
		Allowances: money.FromPaisePtr(allowances),
		Deductions: money.FromPaisePtr(deductions),
	}
	slip.Gross = money.Paise(gross)
	slip.NetPay = money.Paise(netPay)
	return slip, nil
}

func (s *Store) ListPayslipsForRun(ctx context.Context, runID string) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payslipColumns+`
    FROM payslips p
    WHERE p.run_id = $1
    ORDER BY p.full_name
  `, runID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (s *Store) ListPayslipsForUser(ctx context.Context, userID string) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payslipColumns+`
    FROM payslips p
    WHERE p.user_id = $1
    ORDER BY p.year DESC, p.month DESC
  `, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (s *Store) GetPayslipForUser(ctx context.Context, payslipID, userID string) (Payslip, UserIdentity, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+payslipColumns+`, u.id, u.full_name, u.email
    FROM payslips p
    JOIN users u ON u.id = p.user_id
    WHERE p.id = $1 AND p.user_id = $2
  `, payslipID, userID)

	var slip Payslip
	var owner UserIdentity
	var ctc, basic, hra, allowances, deductions *int64
	var gross, netPay int64
	err := row.Scan(
		&slip.ID, &slip.RunID, &slip.UserID, &slip.Month, &slip.Year,
		&slip.EmployeeCode, &slip.FullName, &slip.Department, &slip.Designation,
		&ctc, &basic, &hra, &allowances, &deductions,
		&gross, &netPay, &slip.CreatedAt,
		&owner.ID, &owner.FullName, &owner.Email,
	)
	if err != nil {
		return Payslip{}, UserIdentity{}, mapNotFound(err)
	}
	slip.Salary = employee.SalaryStructure{
		CTC:        money.FromPaisePtr(ctc),
		Basic:      money.FromPaisePtr(basic),
		HRA:        money.FromPaisePtr(hra),
		Allowances: money.FromPaisePtr(allowances),
		Deductions: money.FromPaisePtr(deductions),
	}
	slip.Gross = money.Paise(gross)
	slip.NetPay = money.Paise(netPay)
	return slip, owner, nil
}

func collectPayslips(rows pgx.Rows) ([]Payslip, error) {
	var slips []Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRun
	}
	return err
}

// mapNotFound folds missing rows and malformed UUID text into ErrNotFound
// so callers cannot tell an absent record from a foreign one.
func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return ErrNotFound
	}
	return err
}
