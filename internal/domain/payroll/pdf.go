package payroll

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
)

const pageWidth = 210.0 // A4 portrait, mm
const pageMargin = 15.0

// RenderPayslipPDF renders one payslip into a PDF document. It touches no
// external state and produces identical bytes for identical inputs, so
// callers can render fully before committing any response headers.
func RenderPayslipPDF(slip Payslip, owner UserIdentity, orgName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	period := PeriodLabel(slip.Month, slip.Year)
	contentWidth := pageWidth - 2*pageMargin

	// Header band
	pdf.SetFillColor(33, 37, 41)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 12, orgName, "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentWidth, 8, "Payslip for "+period, "", 1, "C", true, 0, "")
	pdf.Ln(6)
	pdf.SetTextColor(0, 0, 0)

	// Identity block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, slip.FullName)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	identity := []struct {
		label string
		value string
	}{
		{"Employee Code", slip.EmployeeCode},
		{"Department", slip.Department},
		{"Designation", slip.Designation},
		{"Email", owner.Email},
		{"Pay Period", period},
	}
	for _, row := range identity {
		if row.value == "" {
			continue
		}
		pdf.CellFormat(40, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Summary boxes: CTC, Gross, Net
	boxWidth := (contentWidth - 10) / 3
	boxes := []struct {
		label string
		value string
	}{
		{"CTC", money.FormatAmount(slip.Salary.CTC)},
		{"Gross", money.FormatRupees(slip.Gross)},
		{"Net Pay", money.FormatRupees(slip.NetPay)},
	}
	top := pdf.GetY()
	for i, box := range boxes {
		x := pageMargin + float64(i)*(boxWidth+5)
		pdf.SetXY(x, top)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(boxWidth, 6, box.label, "LTR", 0, "C", false, 0, "")
		pdf.SetXY(x, top+6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(boxWidth, 8, box.value, "LBR", 0, "C", false, 0, "")
	}
	pdf.SetY(top + 20)

	// Earnings: absent components are omitted, explicit values (including
	// zero) get a row.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	earnings := []struct {
		label  string
		amount money.Amount
	}{
		{"Basic", slip.Salary.Basic},
		{"HRA", slip.Salary.HRA},
		{"Other Allowances", slip.Salary.Allowances},
	}
	for _, row := range earnings {
		if !row.amount.Present {
			continue
		}
		pdf.CellFormat(contentWidth-50, 6, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, money.FormatRupees(row.amount.Paise), "B", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth-50, 7, "Gross Earnings", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, money.FormatRupees(slip.Gross), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Deductions: one total row, or one explanatory line, never both.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	if slip.Salary.Deductions.Present {
		pdf.CellFormat(contentWidth-50, 6, "Total Deductions", "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, money.FormatRupees(slip.Salary.Deductions.Paise), "B", 1, "R", false, 0, "")
	} else {
		pdf.Cell(0, 6, "No deductions for this period.")
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth-50, 8, "Net Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, money.FormatRupees(slip.NetPay), "T", 1, "R", false, 0, "")

	// Footer disclaimer
	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentWidth, 5, "This is a system-generated payslip and does not require a signature.", "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
