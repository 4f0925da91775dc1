package payroll

import (
	"bytes"
	"testing"

	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

func samplePayslip() Payslip {
	return Payslip{
		ID:           "slip-1",
		UserID:       "u1",
		Month:        3,
		Year:         2025,
		EmployeeCode: "HTEMP101",
		FullName:     "Asha Rao",
		Department:   "Engineering",
		Designation:  "Developer",
		Salary: employee.SalaryStructure{
			CTC:        money.Some(36000000),
			Basic:      money.Some(2000000),
			HRA:        money.Some(800000),
			Allowances: money.Some(200000),
			Deductions: money.Some(100000),
		},
		Gross:  3000000,
		NetPay: 2900000,
	}
}

func TestRenderPayslipPDFProducesDocument(t *testing.T) {
	data, err := RenderPayslipPDF(samplePayslip(), UserIdentity{ID: "u1", FullName: "Asha Rao", Email: "asha@example.com"}, "Employee Management System")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", data[:8])
	}
}

func TestRenderPayslipPDFIsDeterministic(t *testing.T) {
	slip := samplePayslip()
	owner := UserIdentity{ID: "u1", FullName: "Asha Rao", Email: "asha@example.com"}

	first, err := RenderPayslipPDF(slip, owner, "Employee Management System")
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := RenderPayslipPDF(slip, owner, "Employee Management System")
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical bytes for identical inputs")
	}
}

func TestRenderPayslipPDFHandlesSparseSnapshot(t *testing.T) {
	slip := Payslip{
		ID:       "slip-2",
		UserID:   "u2",
		Month:    4,
		Year:     2025,
		FullName: "Ravi Kumar",
		Salary: employee.SalaryStructure{
			Basic: money.Some(1500000),
		},
		Gross:  1500000,
		NetPay: 1500000,
	}

	data, err := RenderPayslipPDF(slip, UserIdentity{ID: "u2", Email: "ravi@example.com"}, "Employee Management System")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a complete PDF for a sparse snapshot")
	}

	full, err := RenderPayslipPDF(samplePayslip(), UserIdentity{ID: "u1", Email: "asha@example.com"}, "Employee Management System")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if bytes.Equal(data, full) {
		t.Fatal("sparse and full snapshots should render differently")
	}
}
