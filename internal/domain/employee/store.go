package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const employeeColumns = `
    e.id, e.user_id, e.employee_code,
    COALESCE(e.department, ''), COALESCE(e.designation, ''), e.employment_type,
    e.date_of_joining,
    e.ctc_paise, e.basic_paise, e.hra_paise, e.allowances_paise, e.deductions_paise,
    e.is_active, e.created_at, e.updated_at,
    u.full_name, u.email, u.status`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var ctc, basic, hra, allowances, deductions *int64
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeCode,
		&emp.Department, &emp.Designation, &emp.EmploymentType,
		&emp.DateOfJoining,
		&ctc, &basic, &hra, &allowances, &deductions,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.FullName, &emp.Email, &emp.UserStatus,
	)
	if err != nil {
		return Employee{}, err
	}
	emp.Salary = SalaryStructure{
		CTC:        money.FromPaisePtr(ctc),
		Basic:      money.FromPaisePtr(basic),
		HRA:        money.FromPaisePtr(hra),
		Allowances: money.FromPaisePtr(allowances),
		Deductions: money.FromPaisePtr(deductions),
	}
	return emp, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total)
	return total, err
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    JOIN users u ON u.id = e.user_id
    ORDER BY e.employee_code
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    JOIN users u ON u.id = e.user_id
    WHERE e.id = $1
  `, id))
	if err != nil {
		return Employee{}, mapNotFound(err)
	}
	return emp, nil
}

type CreateParams struct {
	FullName       string
	Email          string
	PasswordHash   string
	Department     string
	Designation    string
	EmploymentType string
	DateOfJoining  *time.Time
	Salary         SalaryStructure
}

// errCodeTaken signals that a concurrent create won the race for the
// next employee code; the whole transaction is retried with a fresh read.
var errCodeTaken = errors.New("employee code already assigned")

// Create inserts the linked user and the employee record in one
// transaction, assigning the next employee code. The code read locks the
// newest employee row; a conflicting concurrent insert retries.
func (s *Store) Create(ctx context.Context, params CreateParams) (Employee, error) {
	var emp Employee
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		emp, err = s.create(ctx, params)
		if !errors.Is(err, errCodeTaken) {
			break
		}
	}
	return emp, err
}

func (s *Store) create(ctx context.Context, params CreateParams) (Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID := uuid.NewString()
	_, err = tx.Exec(ctx, `
    INSERT INTO users (id, full_name, email, password_hash, role, status)
    VALUES ($1, $2, $3, $4, 'employee', 'active')
  `, userID, params.FullName, strings.ToLower(params.Email), params.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrEmailTaken
		}
		return Employee{}, err
	}

	var lastCode string
	err = tx.QueryRow(ctx, `
    SELECT employee_code FROM employees ORDER BY created_at DESC, employee_code DESC LIMIT 1 FOR UPDATE
  `).Scan(&lastCode)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, err
	}

	employeeID := uuid.NewString()
	code := NextCode(lastCode)
	_, err = tx.Exec(ctx, `
    INSERT INTO employees (
      id, user_id, employee_code, department, designation, employment_type, date_of_joining,
      ctc_paise, basic_paise, hra_paise, allowances_paise, deductions_paise, is_active
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
  `, employeeID, userID, code,
		nullIfEmpty(params.Department), nullIfEmpty(params.Designation), params.EmploymentType, params.DateOfJoining,
		params.Salary.CTC.PaisePtr(), params.Salary.Basic.PaisePtr(), params.Salary.HRA.PaisePtr(),
		params.Salary.Allowances.PaisePtr(), params.Salary.Deductions.PaisePtr())
	if err != nil {
		if isCodeViolation(err) {
			return Employee{}, errCodeTaken
		}
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, employeeID)
}

type UpdateParams struct {
	Department     string
	Designation    string
	EmploymentType string
	DateOfJoining  *time.Time
	IsActive       bool
}

func (s *Store) Update(ctx context.Context, id string, params UpdateParams) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET department = $1, designation = $2, employment_type = $3, date_of_joining = $4,
        is_active = $5, updated_at = now()
    WHERE id = $6
  `, nullIfEmpty(params.Department), nullIfEmpty(params.Designation), params.EmploymentType,
		params.DateOfJoining, params.IsActive, id)
	if err != nil {
		return Employee{}, mapNotFound(err)
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// UpdateSalary replaces the full salary structure. This only affects
// future payroll runs; payslips already written keep their snapshots.
func (s *Store) UpdateSalary(ctx context.Context, id string, salary SalaryStructure) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET ctc_paise = $1, basic_paise = $2, hra_paise = $3, allowances_paise = $4,
        deductions_paise = $5, updated_at = now()
    WHERE id = $6
  `, salary.CTC.PaisePtr(), salary.Basic.PaisePtr(), salary.HRA.PaisePtr(),
		salary.Allowances.PaisePtr(), salary.Deductions.PaisePtr(), id)
	if err != nil {
		return Employee{}, mapNotFound(err)
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Deactivate removes the employee from future payroll runs without
// touching historical payslips.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapNotFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isCodeViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		pgErr.ConstraintName == "employees_employee_code_key"
}

// mapNotFound treats missing rows and malformed UUID text the same way:
// the caller asked for something that does not exist.
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
