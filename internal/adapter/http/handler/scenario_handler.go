package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// ScenarioService defines the behavior needed by ScenarioHandler.
type ScenarioService interface {
	CreateScenario(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error)
	GetScenario(ctx context.Context, id string) (*domain.Scenario, error)
	ListScenarios(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error)
	ActivateScenario(ctx context.Context, id string) error
	DeactivateScenario(ctx context.Context, id string) error
}

// ScenarioHandler handles scenario-related HTTP requests.
type ScenarioHandler struct {
	scenarioUC ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioUC ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioUC: scenarioUC}
}

// Create creates a new scenario.
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scenario request", err.Error())
		return
	}

	scenario, err := h.scenarioUC.CreateScenario(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create scenario", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ScenarioFromDomain(scenario))
}

// Get retrieves a scenario by ID.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing scenario ID", "")
		return
	}

	scenario, err := h.scenarioUC.GetScenario(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get scenario", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ScenarioFromDomain(scenario))
}

// List lists scenarios, optionally filtered by source company and active
// state.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	sourceCompanyID := r.URL.Query().Get("source_company_id")
	activeOnly := r.URL.Query().Get("active") == "true"

	scenarios, err := h.scenarioUC.ListScenarios(r.Context(), sourceCompanyID, activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scenarios", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScenariosFromDomain(scenarios))
}

// Activate marks a scenario active for its source company.
func (h *ScenarioHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing scenario ID", "")
		return
	}

	if err := h.scenarioUC.ActivateScenario(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to activate scenario", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

// Deactivate clears a scenario's active flag.
func (h *ScenarioHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing scenario ID", "")
		return
	}

	if err := h.scenarioUC.DeactivateScenario(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to deactivate scenario", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
