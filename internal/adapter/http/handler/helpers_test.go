package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit-logs?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/audit-logs?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"bank line not found", domain.ErrBankLineNotFound, http.StatusNotFound},
		{"scenario not found", domain.ErrScenarioNotFound, http.StatusNotFound},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"stale reference", &domain.StaleReferenceError{Kind: "bank statement line", ID: "line-1"}, http.StatusGone},
		{"scenario conflict", domain.ErrScenarioConflict, http.StatusConflict},
		{"already reconciled", domain.ErrAlreadyReconciled, http.StatusConflict},
		{"config error", domain.NewConfigError(domain.RoleDestIntercoAP, "Beta GmbH"), http.StatusUnprocessableEntity},
		{"precondition error", &domain.PreconditionError{Precondition: "no outstanding account"}, http.StatusUnprocessableEntity},
		{"scenario incomplete", domain.ErrScenarioIncomplete, http.StatusUnprocessableEntity},
		{"deprecated account", domain.ErrDeprecatedAccount, http.StatusUnprocessableEntity},
		{"closed period", domain.ErrClosedPeriod, http.StatusUnprocessableEntity},
		{"percent sum", domain.ErrPercentSum, http.StatusBadRequest},
		{"no shares", domain.ErrNoShares, http.StatusBadRequest},
		{"zero amount", domain.ErrZeroAmount, http.StatusBadRequest},
		{"same company", domain.ErrSameCompany, http.StatusBadRequest},
		{"company mismatch", domain.ErrScenarioCompanyMismatch, http.StatusBadRequest},
		{"scenario inactive", domain.ErrScenarioInactive, http.StatusBadRequest},
		{"quick booking disabled", domain.ErrQuickBookingDisabled, http.StatusNotFound},
		{"unknown template", domain.ErrUnknownTemplate, http.StatusBadRequest},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusConflict, "failed to allocate bank line", "already reconciled")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %s", ct)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "failed to allocate bank line" || resp.Message != "already reconciled" {
		t.Fatalf("unexpected error payload: %+v", resp)
	}
}
