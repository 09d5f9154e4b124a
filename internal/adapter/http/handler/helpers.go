package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var configErr *domain.ConfigError
	var preconditionErr *domain.PreconditionError
	var staleErr *domain.StaleReferenceError

	switch {
	case errors.Is(err, domain.ErrBankLineNotFound),
		errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrJournalNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrQuickBookingDisabled):
		return http.StatusNotFound
	case errors.As(err, &staleErr):
		return http.StatusGone
	case errors.Is(err, domain.ErrScenarioConflict),
		errors.Is(err, domain.ErrAlreadyReconciled):
		return http.StatusConflict
	case errors.As(err, &configErr),
		errors.As(err, &preconditionErr),
		errors.Is(err, domain.ErrScenarioIncomplete),
		errors.Is(err, domain.ErrDeprecatedAccount),
		errors.Is(err, domain.ErrClosedPeriod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrPercentSum),
		errors.Is(err, domain.ErrNoShares),
		errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrSameCompany),
		errors.Is(err, domain.ErrMissingPartner),
		errors.Is(err, domain.ErrScenarioCompanyMismatch),
		errors.Is(err, domain.ErrScenarioInactive),
		errors.Is(err, domain.ErrForeignJournal),
		errors.Is(err, domain.ErrUnknownTemplate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
