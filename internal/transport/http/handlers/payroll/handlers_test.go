package payrollhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Suvo-Ghosh/EMS/internal/domain/payroll"
)

func postRun(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(payroll.NewService(nil), "Test Org", nil)
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.handleRunPayroll(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if env.Success || env.Error == nil {
		t.Fatalf("expected a failure envelope, got %s", rec.Body.String())
	}
	return env.Error.Code
}

func TestRunPayrollRejectsNonIntegerPeriod(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"fractional month", `{"month":3.5,"year":2030}`, "invalid_period"},
		{"fractional year", `{"month":3,"year":2030.25}`, "invalid_period"},
		{"missing month", `{"year":2030}`, "invalid_period"},
		{"missing year", `{"month":3}`, "invalid_period"},
		{"out of range month", `{"month":0,"year":2030}`, "invalid_period"},
		{"string month", `{"month":"3","year":2030}`, "invalid_payload"},
		{"not json", `month=3`, "invalid_payload"},
	}
	for _, tc := range cases {
		rec := postRun(t, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
			continue
		}
		if got := errorCode(t, rec); got != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.code, got)
		}
	}
}
