package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/metrics"
)

// ScenarioUseCase manages the saved booking scenarios. At most one scenario
// may be active per source company.
type ScenarioUseCase struct {
	scenarios ScenarioRepository
	audit     AuditRepository
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewScenarioUseCase creates a new ScenarioUseCase.
func NewScenarioUseCase(scenarios ScenarioRepository, audit AuditRepository, idGen IDGenerator, metrics *metrics.Metrics) *ScenarioUseCase {
	return &ScenarioUseCase{
		scenarios: scenarios,
		audit:     audit,
		idGen:     idGen,
		metrics:   metrics,
	}
}

// CreateScenarioInput represents input for creating a scenario.
type CreateScenarioInput struct {
	Name            string
	Active          bool
	SourceCompanyID string
	DestCompanyID   string

	SourceJournalID string
	DestJournalID   string

	SourceDebitAccountID  string
	SourceCreditAccountID string
	DestDebitAccountID    string
	DestCreditAccountID   string
}

// CreateScenario validates and stores a new scenario, enforcing the
// one-active-per-source-company constraint.
func (uc *ScenarioUseCase) CreateScenario(ctx context.Context, input CreateScenarioInput) (*domain.Scenario, error) {
	now := time.Now().UTC()
	scenario := &domain.Scenario{
		ID:                    uc.idGen.Generate(),
		Name:                  input.Name,
		Active:                input.Active,
		SourceCompanyID:       input.SourceCompanyID,
		DestCompanyID:         input.DestCompanyID,
		SourceJournalID:       input.SourceJournalID,
		DestJournalID:         input.DestJournalID,
		SourceDebitAccountID:  input.SourceDebitAccountID,
		SourceCreditAccountID: input.SourceCreditAccountID,
		DestDebitAccountID:    input.DestDebitAccountID,
		DestCreditAccountID:   input.DestCreditAccountID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	if scenario.Active {
		if err := uc.checkActiveConflict(ctx, scenario.SourceCompanyID, scenario.ID); err != nil {
			return nil, err
		}
	}

	if err := uc.scenarios.Create(ctx, scenario); err != nil {
		return nil, err
	}

	uc.logAudit(ctx, domain.AuditActionScenarioCreate, scenario.ID, nil)
	if uc.metrics != nil {
		uc.metrics.ScenariosCreated.Inc()
	}

	return scenario, nil
}

// GetScenario retrieves a scenario by ID.
func (uc *ScenarioUseCase) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	return uc.scenarios.GetByID(ctx, id)
}

// ListScenarios lists scenarios, optionally filtered by source company and
// active state.
func (uc *ScenarioUseCase) ListScenarios(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	return uc.scenarios.List(ctx, sourceCompanyID, activeOnly)
}

// ActivateScenario activates a scenario, rejecting the activation when a
// different scenario is already active for the same source company.
func (uc *ScenarioUseCase) ActivateScenario(ctx context.Context, id string) error {
	scenario, err := uc.scenarios.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.checkActiveConflict(ctx, scenario.SourceCompanyID, scenario.ID); err != nil {
		return err
	}

	if err := uc.scenarios.SetActive(ctx, id, true); err != nil {
		return err
	}

	uc.logAudit(ctx, domain.AuditActionScenarioActivate, id, nil)
	if uc.metrics != nil {
		uc.metrics.ScenarioActivation.WithLabelValues("activated").Inc()
	}

	return nil
}

// DeactivateScenario deactivates a scenario.
func (uc *ScenarioUseCase) DeactivateScenario(ctx context.Context, id string) error {
	if _, err := uc.scenarios.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.scenarios.SetActive(ctx, id, false); err != nil {
		return err
	}

	uc.logAudit(ctx, domain.AuditActionScenarioDeactivate, id, nil)
	if uc.metrics != nil {
		uc.metrics.ScenarioActivation.WithLabelValues("deactivated").Inc()
	}

	return nil
}

func (uc *ScenarioUseCase) checkActiveConflict(ctx context.Context, sourceCompanyID, scenarioID string) error {
	active, err := uc.scenarios.FindActiveBySourceCompany(ctx, sourceCompanyID)
	if errors.Is(err, domain.ErrScenarioNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if active.ID != scenarioID {
		return domain.ErrScenarioConflict
	}
	return nil
}

func (uc *ScenarioUseCase) logAudit(ctx context.Context, action domain.AuditAction, scenarioID string, actionErr error) {
	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "scenario",
		ResourceID:   scenarioID,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
	if actionErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = actionErr.Error()
	}
	// audit is advisory; a failed write is not a failed action
	_ = uc.audit.Create(ctx, log)
}
