package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// BookingService defines the behavior needed by BookingHandler.
type BookingService interface {
	Allocate(ctx context.Context, input usecase.AllocateInput) (*usecase.BookingResult, error)
	Book(ctx context.Context, input usecase.BookInput) (*usecase.BookingResult, error)
}

// BookingHandler handles allocate and book requests over bank lines.
type BookingHandler struct {
	bookingUC BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingUC BookingService) *BookingHandler {
	return &BookingHandler{bookingUC: bookingUC}
}

// Allocate splits a bank line across companies and posts the entry pairs.
func (h *BookingHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank line ID", "")
		return
	}

	var req dto.AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid allocate request", err.Error())
		return
	}

	requestID := chimiddleware.GetReqID(r.Context())

	result, err := h.bookingUC.Allocate(r.Context(), req.ToUseCaseInput(id, requestID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to allocate bank line", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BookingFromResult(result))
}

// Book posts a bank line through a scenario or a quick template.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank line ID", "")
		return
	}

	var req dto.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid book request", err.Error())
		return
	}

	requestID := chimiddleware.GetReqID(r.Context())

	result, err := h.bookingUC.Book(r.Context(), req.ToUseCaseInput(id, requestID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to book bank line", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BookingFromResult(result))
}
