package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suvo-Ghosh/EMS/internal/auth"
	"github.com/Suvo-Ghosh/EMS/internal/domain/payroll"
	"github.com/Suvo-Ghosh/EMS/internal/platform/metrics"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/api"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
	OrgName string
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, orgName string, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, OrgName: orgName, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.ManagementRoles...)).Get("/runs", h.handleListRuns)
		r.With(middleware.RequireRole(auth.ManagementRoles...)).Post("/runs", h.handleRunPayroll)
		r.With(middleware.RequireRole(auth.ManagementRoles...)).Get("/runs/{runID}/payslips", h.handleListRunPayslips)
		r.With(middleware.RequireAuth).Get("/my-payslips", h.handleListMyPayslips)
		r.With(middleware.RequireAuth).Get("/my-payslips/{payslipID}/pdf", h.handleDownloadMyPayslip)
	})
}

type runSummary struct {
	EmployeeCount int     `json:"employeeCount"`
	TotalNet      float64 `json:"totalNet"`
}

type runResponse struct {
	ID          string     `json:"id"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	Status      string     `json:"status"`
	Summary     runSummary `json:"summary"`
	ProcessedBy string     `json:"processedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type salaryResponse struct {
	CTC        *float64 `json:"ctc,omitempty"`
	Basic      *float64 `json:"basic,omitempty"`
	HRA        *float64 `json:"hra,omitempty"`
	Allowances *float64 `json:"allowances,omitempty"`
	Deductions *float64 `json:"deductions,omitempty"`
}

type payslipResponse struct {
	ID           string         `json:"id"`
	RunID        string         `json:"payrollRun"`
	Month        int            `json:"month"`
	Year         int            `json:"year"`
	EmployeeCode string         `json:"employeeCode,omitempty"`
	FullName     string         `json:"fullName,omitempty"`
	Department   string         `json:"department,omitempty"`
	Designation  string         `json:"designation,omitempty"`
	Salary       salaryResponse `json:"salary"`
	Gross        float64        `json:"gross"`
	NetPay       float64        `json:"netPay"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func toRunResponse(run payroll.Run) runResponse {
	return runResponse{
		ID:     run.ID,
		Month:  run.Month,
		Year:   run.Year,
		Status: run.Status,
		Summary: runSummary{
			EmployeeCount: run.EmployeeCount,
			TotalNet:      run.TotalNet.Rupees(),
		},
		ProcessedBy: run.ProcessedBy,
		CreatedAt:   run.CreatedAt,
	}
}

func toPayslipResponse(slip payroll.Payslip) payslipResponse {
	return payslipResponse{
		ID:           slip.ID,
		RunID:        slip.RunID,
		Month:        slip.Month,
		Year:         slip.Year,
		EmployeeCode: slip.EmployeeCode,
		FullName:     slip.FullName,
		Department:   slip.Department,
		Designation:  slip.Designation,
		Salary: salaryResponse{
			CTC:        slip.Salary.CTC.RupeesPtr(),
			Basic:      slip.Salary.Basic.RupeesPtr(),
			HRA:        slip.Salary.HRA.RupeesPtr(),
			Allowances: slip.Salary.Allowances.RupeesPtr(),
			Deductions: slip.Salary.Deductions.RupeesPtr(),
		},
		Gross:     slip.Gross.Rupees(),
		NetPay:    slip.NetPay.Rupees(),
		CreatedAt: slip.CreatedAt,
	}
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Service.ListRuns(r.Context())
	if err != nil {
		h.fail(w, r, err, "list runs")
		return
	}
	out := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

type runPayload struct {
	Month json.Number `json:"month"`
	Year  json.Number `json:"year"`
}

// period parses the requested month and year. Missing and non-integer
// values are a period problem, not a payload problem.
func (p runPayload) period() (int, int, error) {
	month, err := p.Month.Int64()
	if err != nil {
		return 0, 0, err
	}
	year, err := p.Year.Int64()
	if err != nil {
		return 0, 0, err
	}
	return int(month), int(year), nil
}

func (h *Handler) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}
	month, year, err := payload.period()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month and year must be integers", middleware.GetRequestID(r.Context()))
		return
	}

	run, err := h.Service.RunPayroll(r.Context(), month, year, user.UserID)
	if err != nil {
		h.fail(w, r, err, fmt.Sprintf("run payroll %d/%d", month, year))
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordPayrollRun()
	}
	api.Created(w, toRunResponse(run), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRunPayslips(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	slips, err := h.Service.ListPayslipsForRun(r.Context(), runID)
	if err != nil {
		h.fail(w, r, err, "list run payslips")
		return
	}
	out := make([]payslipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toPayslipResponse(slip))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMyPayslips(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	slips, err := h.Service.ListMyPayslips(r.Context(), user.UserID)
	if err != nil {
		h.fail(w, r, err, "list my payslips")
		return
	}
	out := make([]payslipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toPayslipResponse(slip))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

// handleDownloadMyPayslip resolves ownership and renders the whole
// document before any response header is written, so a failure can never
// leave a partial PDF on the wire.
func (h *Handler) handleDownloadMyPayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	payslipID := chi.URLParam(r, "payslipID")

	slip, owner, err := h.Service.PayslipForUser(r.Context(), payslipID, user.UserID)
	if err != nil {
		h.fail(w, r, err, "download payslip")
		return
	}

	data, err := payroll.RenderPayslipPDF(slip, owner, h.OrgName)
	if err != nil {
		h.fail(w, r, err, "render payslip pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%d-%02d.pdf", slip.Year, slip.Month))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", err.Error(), reqID)
	case errors.Is(err, payroll.ErrDuplicateRun):
		api.Fail(w, http.StatusConflict, "duplicate_run", err.Error(), reqID)
	case errors.Is(err, payroll.ErrNoEligibleEmployees):
		api.Fail(w, http.StatusUnprocessableEntity, "no_eligible_employees", err.Error(), reqID)
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "record not found", reqID)
	default:
		slog.Error("payroll "+op+" failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal", "something went wrong", reqID)
	}
}
