package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suvo-Ghosh/EMS/internal/auth"
	"github.com/Suvo-Ghosh/EMS/internal/domain/employee"
	"github.com/Suvo-Ghosh/EMS/internal/platform/money"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/api"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/middleware"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.ManagementRoles...))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Put("/{employeeID}/salary", h.handleUpdateSalary)
		r.Delete("/{employeeID}", h.handleDeactivate)
	})
}

type salaryPayload struct {
	CTC        *float64 `json:"ctc"`
	Basic      *float64 `json:"basic"`
	HRA        *float64 `json:"hra"`
	Allowances *float64 `json:"allowances"`
	Deductions *float64 `json:"deductions"`
}

func (p salaryPayload) toSalary() employee.SalaryStructure {
	return employee.SalaryStructure{
		CTC:        money.FromRupeesPtr(p.CTC),
		Basic:      money.FromRupeesPtr(p.Basic),
		HRA:        money.FromRupeesPtr(p.HRA),
		Allowances: money.FromRupeesPtr(p.Allowances),
		Deductions: money.FromRupeesPtr(p.Deductions),
	}
}

type salaryResponse struct {
	CTC        *float64 `json:"ctc,omitempty"`
	Basic      *float64 `json:"basic,omitempty"`
	HRA        *float64 `json:"hra,omitempty"`
	Allowances *float64 `json:"allowances,omitempty"`
	Deductions *float64 `json:"deductions,omitempty"`
}

type employeeResponse struct {
	ID             string         `json:"id"`
	EmployeeCode   string         `json:"employeeCode"`
	FullName       string         `json:"fullName"`
	Email          string         `json:"email"`
	Department     string         `json:"department,omitempty"`
	Designation    string         `json:"designation,omitempty"`
	EmploymentType string         `json:"employmentType"`
	DateOfJoining  *time.Time     `json:"dateOfJoining,omitempty"`
	Salary         salaryResponse `json:"salary"`
	IsActive       bool           `json:"isActive"`
	UserStatus     string         `json:"userStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	return employeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		FullName:       e.FullName,
		Email:          e.Email,
		Department:     e.Department,
		Designation:    e.Designation,
		EmploymentType: e.EmploymentType,
		DateOfJoining:  e.DateOfJoining,
		Salary: salaryResponse{
			CTC:        e.Salary.CTC.RupeesPtr(),
			Basic:      e.Salary.Basic.RupeesPtr(),
			HRA:        e.Salary.HRA.RupeesPtr(),
			Allowances: e.Salary.Allowances.RupeesPtr(),
			Deductions: e.Salary.Deductions.RupeesPtr(),
		},
		IsActive:   e.IsActive,
		UserStatus: e.UserStatus,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

type listResponse struct {
	Employees []employeeResponse `json:"employees"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "pageSize", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := h.Store.Count(r.Context())
	if err != nil {
		h.fail(w, r, err, "count employees")
		return
	}
	employees, err := h.Store.List(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		h.fail(w, r, err, "list employees")
		return
	}

	out := listResponse{
		Employees: make([]employeeResponse, 0, len(employees)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
	for _, e := range employees {
		out.Employees = append(out.Employees, toEmployeeResponse(e))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "get employee")
		return
	}
	api.Success(w, toEmployeeResponse(e), middleware.GetRequestID(r.Context()))
}

type createPayload struct {
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	Password       string        `json:"password"`
	Department     string        `json:"department"`
	Designation    string        `json:"designation"`
	EmploymentType string        `json:"employmentType"`
	DateOfJoining  *time.Time    `json:"dateOfJoining"`
	Salary         salaryPayload `json:"salary"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", reqID)
		return
	}
	if payload.FullName == "" || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "fullName and email are required", reqID)
		return
	}
	if len(payload.Password) < 8 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "password must be at least 8 characters", reqID)
		return
	}
	if payload.EmploymentType == "" {
		payload.EmploymentType = employee.EmploymentFullTime
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		h.fail(w, r, err, "hash password")
		return
	}

	e, err := h.Store.Create(r.Context(), employee.CreateParams{
		FullName:       payload.FullName,
		Email:          payload.Email,
		PasswordHash:   hash,
		Department:     payload.Department,
		Designation:    payload.Designation,
		EmploymentType: payload.EmploymentType,
		DateOfJoining:  payload.DateOfJoining,
		Salary:         payload.Salary.toSalary(),
	})
	if err != nil {
		h.fail(w, r, err, "create employee")
		return
	}
	api.Created(w, toEmployeeResponse(e), reqID)
}

type updatePayload struct {
	Department     string     `json:"department"`
	Designation    string     `json:"designation"`
	EmploymentType string     `json:"employmentType"`
	DateOfJoining  *time.Time `json:"dateOfJoining"`
	IsActive       *bool      `json:"isActive"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", reqID)
		return
	}
	if payload.EmploymentType == "" {
		payload.EmploymentType = employee.EmploymentFullTime
	}
	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	e, err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), employee.UpdateParams{
		Department:     payload.Department,
		Designation:    payload.Designation,
		EmploymentType: payload.EmploymentType,
		DateOfJoining:  payload.DateOfJoining,
		IsActive:       isActive,
	})
	if err != nil {
		h.fail(w, r, err, "update employee")
		return
	}
	api.Success(w, toEmployeeResponse(e), reqID)
}

func (h *Handler) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", reqID)
		return
	}
	for _, v := range []*float64{payload.CTC, payload.Basic, payload.HRA, payload.Allowances, payload.Deductions} {
		if v != nil && *v < 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "salary components must not be negative", reqID)
			return
		}
	}

	e, err := h.Store.UpdateSalary(r.Context(), chi.URLParam(r, "employeeID"), payload.toSalary())
	if err != nil {
		h.fail(w, r, err, "update salary")
		return
	}
	api.Success(w, toEmployeeResponse(e), reqID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Deactivate(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.fail(w, r, err, "deactivate employee")
		return
	}
	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email is already in use", reqID)
	default:
		slog.Error("employee "+op+" failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal", "something went wrong", reqID)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
