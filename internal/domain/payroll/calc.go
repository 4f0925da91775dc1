package payroll

import (
	"fmt"
	"time"

	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

// ComputeGross returns basic + hra + allowances. Absent components count
// as zero; a partial salary structure is valid.
func ComputeGross(salary employee.SalaryStructure) money.Paise {
	return salary.Basic.OrZero() + salary.HRA.OrZero() + salary.Allowances.OrZero()
}

// ComputeNetPay returns gross minus deductions.
func ComputeNetPay(salary employee.SalaryStructure) money.Paise {
	return ComputeGross(salary) - salary.Deductions.OrZero()
}

// BuildPayslip copies the employee's identity and salary structure into a
// period-stamped payslip. The result is a value snapshot with no
// reference back to the employee record.
func BuildPayslip(emp EligibleEmployee, month, year int) Payslip {
	return Payslip{
		UserID:       emp.UserID,
		Month:        month,
		Year:         year,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Department:   emp.Department,
		Designation:  emp.Designation,
		Salary:       emp.Salary,
		Gross:        ComputeGross(emp.Salary),
		NetPay:       ComputeNetPay(emp.Salary),
	}
}

// PeriodLabel renders a period as e.g. "March 2025".
func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
