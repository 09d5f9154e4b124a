package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/dto"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

type scenarioServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error)
	getFn        func(ctx context.Context, id string) (*domain.Scenario, error)
	listFn       func(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error)
	activateFn   func(ctx context.Context, id string) error
	deactivateFn func(ctx context.Context, id string) error
}

func (s *scenarioServiceStub) CreateScenario(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error) {
	return s.createFn(ctx, input)
}

func (s *scenarioServiceStub) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	return s.getFn(ctx, id)
}

func (s *scenarioServiceStub) ListScenarios(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	return s.listFn(ctx, sourceCompanyID, activeOnly)
}

func (s *scenarioServiceStub) ActivateScenario(ctx context.Context, id string) error {
	return s.activateFn(ctx, id)
}

func (s *scenarioServiceStub) DeactivateScenario(ctx context.Context, id string) error {
	return s.deactivateFn(ctx, id)
}

func scenarioRequestBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(dto.CreateScenarioRequest{
		Name:                  "Alpha to Beta recharge",
		Active:                true,
		SourceCompanyID:       "co-alpha",
		DestCompanyID:         "co-beta",
		SourceJournalID:       "jrn-alpha",
		DestJournalID:         "jrn-beta",
		SourceDebitAccountID:  "acc-alpha-exp",
		SourceCreditAccountID: "acc-alpha-ar",
		DestDebitAccountID:    "acc-beta-exp",
		DestCreditAccountID:   "acc-beta-ap",
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestScenarioHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateScenarioInput
	handler := NewScenarioHandler(&scenarioServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error) {
			captured = input
			return &domain.Scenario{ID: "scn-1", Name: input.Name, Active: input.Active}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/scenarios", bytes.NewReader(scenarioRequestBody(t)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.SourceCompanyID != "co-alpha" || captured.DestCompanyID != "co-beta" || !captured.Active {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.ScenarioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "scn-1" {
		t.Fatalf("expected scenario ID scn-1, got %s", resp.ID)
	}
}

func TestScenarioHandler_Create_MissingFields(t *testing.T) {
	handler := NewScenarioHandler(&scenarioServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error) {
			t.Fatal("CreateScenario should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/scenarios", bytes.NewBufferString(`{"name":"incomplete"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestScenarioHandler_Create_Conflict(t *testing.T) {
	handler := NewScenarioHandler(&scenarioServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error) {
			return nil, domain.ErrScenarioConflict
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/scenarios", bytes.NewReader(scenarioRequestBody(t)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestScenarioHandler_List_ForwardsFilters(t *testing.T) {
	var capturedCompany string
	var capturedActive bool
	handler := NewScenarioHandler(&scenarioServiceStub{
		listFn: func(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
			capturedCompany = sourceCompanyID
			capturedActive = activeOnly
			return []*domain.Scenario{{ID: "scn-1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/scenarios?source_company_id=co-alpha&active=true", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedCompany != "co-alpha" || !capturedActive {
		t.Fatalf("expected filters to be forwarded, got company=%q active=%v", capturedCompany, capturedActive)
	}
}

func TestScenarioHandler_Activate(t *testing.T) {
	t.Run("activates scenario", func(t *testing.T) {
		var captured string
		handler := NewScenarioHandler(&scenarioServiceStub{
			activateFn: func(ctx context.Context, id string) error {
				captured = id
				return nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/scenarios/scn-1/activate", nil)
		req = setChiURLParam(req, "id", "scn-1")
		rec := httptest.NewRecorder()

		handler.Activate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured != "scn-1" {
			t.Fatalf("expected scenario ID scn-1, got %q", captured)
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		handler := NewScenarioHandler(&scenarioServiceStub{
			activateFn: func(ctx context.Context, id string) error { return domain.ErrScenarioConflict },
		})

		req := httptest.NewRequest(http.MethodPost, "/scenarios/scn-2/activate", nil)
		req = setChiURLParam(req, "id", "scn-2")
		rec := httptest.NewRecorder()

		handler.Activate(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestScenarioHandler_Deactivate_NotFound(t *testing.T) {
	handler := NewScenarioHandler(&scenarioServiceStub{
		deactivateFn: func(ctx context.Context, id string) error { return domain.ErrScenarioNotFound },
	})

	req := httptest.NewRequest(http.MethodPost, "/scenarios/scn-gone/deactivate", nil)
	req = setChiURLParam(req, "id", "scn-gone")
	rec := httptest.NewRecorder()

	handler.Deactivate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
