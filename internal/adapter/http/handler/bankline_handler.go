package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// BankLineService defines the behavior needed by BankLineHandler.
type BankLineService interface {
	Open(ctx context.Context, bankLineID, selectedScenarioID string) (*usecase.OpenResult, error)
	Get(ctx context.Context, id string) (*domain.BankLine, error)
	ListGeneratedEntries(ctx context.Context, bankLineID string) ([]*domain.JournalEntry, error)
}

// BankLineHandler handles bank statement line HTTP requests.
type BankLineHandler struct {
	bankLineUC BankLineService
}

// NewBankLineHandler creates a new BankLineHandler.
func NewBankLineHandler(bankLineUC BankLineService) *BankLineHandler {
	return &BankLineHandler{bankLineUC: bankLineUC}
}

// Get retrieves a bank line by ID.
func (h *BankLineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank line ID", "")
		return
	}

	line, err := h.bankLineUC.Get(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get bank line", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BankLineFromDomain(line))
}

// Open validates the line and the remembered scenario selection before the
// booking form is shown.
func (h *BankLineHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank line ID", "")
		return
	}

	selectedScenarioID := r.URL.Query().Get("scenario_id")

	result, err := h.bankLineUC.Open(r.Context(), id, selectedScenarioID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to open bank line", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OpenFromResult(result))
}

// ListEntries lists the journal entries generated from a bank line.
func (h *BankLineHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank line ID", "")
		return
	}

	entries, err := h.bankLineUC.ListGeneratedEntries(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list generated entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
