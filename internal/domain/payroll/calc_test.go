package payroll

import (
	"testing"

	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

func TestBuildPayslipComputesGrossAndNet(t *testing.T) {
	emp := EligibleEmployee{
		UserID:       "u1",
		EmployeeCode: "HTEMP101",
		FullName:     "Asha Rao",
		Salary: employee.SalaryStructure{
			Basic:      money.Some(2000000),
			HRA:        money.Some(800000),
			Allowances: money.Some(200000),
			Deductions: money.Some(100000),
		},
	}

	slip := BuildPayslip(emp, 3, 2025)

	if slip.Gross != 3000000 {
		t.Fatalf("expected gross 3000000, got %d", slip.Gross)
	}
	if slip.NetPay != 2900000 {
		t.Fatalf("expected net 2900000, got %d", slip.NetPay)
	}
	if slip.Month != 3 || slip.Year != 2025 {
		t.Fatalf("expected period 3/2025, got %d/%d", slip.Month, slip.Year)
	}
}

func TestBuildPayslipTreatsAbsentComponentsAsZero(t *testing.T) {
	emp := EligibleEmployee{
		UserID: "u1",
		Salary: employee.SalaryStructure{
			Basic: money.Some(1500000),
		},
	}

	slip := BuildPayslip(emp, 4, 2025)

	if slip.Gross != 1500000 {
		t.Fatalf("expected gross 1500000, got %d", slip.Gross)
	}
	if slip.NetPay != 1500000 {
		t.Fatalf("expected net 1500000, got %d", slip.NetPay)
	}
	if slip.Salary.HRA.Present {
		t.Fatal("absent hra should stay absent in the snapshot")
	}
}

func TestBuildPayslipSnapshotIsIndependent(t *testing.T) {
	emp := EligibleEmployee{
		UserID:   "u1",
		FullName: "Before Edit",
		Salary: employee.SalaryStructure{
			Basic: money.Some(1000000),
		},
	}

	slip := BuildPayslip(emp, 1, 2025)

	emp.FullName = "After Edit"
	emp.Salary.Basic = money.Some(9999900)

	if slip.FullName != "Before Edit" {
		t.Fatalf("payslip identity changed after employee edit: %s", slip.FullName)
	}
	if slip.Salary.Basic.Paise != 1000000 {
		t.Fatalf("payslip salary changed after employee edit: %d", slip.Salary.Basic.Paise)
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := PeriodLabel(3, 2025); got != "March 2025" {
		t.Fatalf("expected March 2025, got %q", got)
	}
	if got := PeriodLabel(12, 2024); got != "December 2024" {
		t.Fatalf("expected December 2024, got %q", got)
	}
}
