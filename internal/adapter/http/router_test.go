package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/handler"
	apimiddleware "github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/middleware"
	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"scenario_id":"scn-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bank-lines/line-1/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/bank-lines/{id}",
		"GET /api/v1/bank-lines/{id}/open",
		"GET /api/v1/bank-lines/{id}/entries",
		"POST /api/v1/bank-lines/{id}/allocate",
		"POST /api/v1/bank-lines/{id}/book",
		"POST /api/v1/scenarios/",
		"GET /api/v1/scenarios/",
		"GET /api/v1/scenarios/{id}",
		"POST /api/v1/scenarios/{id}/activate",
		"POST /api/v1/scenarios/{id}/deactivate",
		"GET /api/v1/audit-logs",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		BookingHandler:  handler.NewBookingHandler(&stubBookingService{}),
		BankLineHandler: handler.NewBankLineHandler(&stubBankLineService{}),
		ScenarioHandler: handler.NewScenarioHandler(&stubScenarioService{}),
		AuditHandler:    handler.NewAuditHandler(&stubAuditService{}),
		HealthHandler:   handler.NewHealthHandler(nil, nil),
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubBookingService struct{}

func (s *stubBookingService) Allocate(ctx context.Context, input usecase.AllocateInput) (*usecase.BookingResult, error) {
	return &usecase.BookingResult{}, nil
}

func (s *stubBookingService) Book(ctx context.Context, input usecase.BookInput) (*usecase.BookingResult, error) {
	return &usecase.BookingResult{}, nil
}

type stubBankLineService struct{}

func (s *stubBankLineService) Open(ctx context.Context, bankLineID, selectedScenarioID string) (*usecase.OpenResult, error) {
	return &usecase.OpenResult{Line: &domain.BankLine{ID: bankLineID}}, nil
}

func (s *stubBankLineService) Get(ctx context.Context, id string) (*domain.BankLine, error) {
	return &domain.BankLine{ID: id}, nil
}

func (s *stubBankLineService) ListGeneratedEntries(ctx context.Context, bankLineID string) ([]*domain.JournalEntry, error) {
	return []*domain.JournalEntry{}, nil
}

type stubScenarioService struct{}

func (s *stubScenarioService) CreateScenario(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error) {
	return &domain.Scenario{}, nil
}

func (s *stubScenarioService) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	return &domain.Scenario{ID: id}, nil
}

func (s *stubScenarioService) ListScenarios(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	return []*domain.Scenario{}, nil
}

func (s *stubScenarioService) ActivateScenario(ctx context.Context, id string) error { return nil }

func (s *stubScenarioService) DeactivateScenario(ctx context.Context, id string) error { return nil }

type stubAuditService struct{}

func (s *stubAuditService) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return []*domain.AuditLog{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
