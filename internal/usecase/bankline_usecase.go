package usecase

import (
	"context"
	"errors"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// BankLineUseCase serves the action-open surface over bank statement lines:
// stale-selection handling, the already-reconciled guard and the generated
// entry listing.
type BankLineUseCase struct {
	bankLines BankLineRepository
	scenarios ScenarioRepository
	ledger    LedgerStore
}

// NewBankLineUseCase creates a new BankLineUseCase.
func NewBankLineUseCase(bankLines BankLineRepository, scenarios ScenarioRepository, ledger LedgerStore) *BankLineUseCase {
	return &BankLineUseCase{
		bankLines: bankLines,
		scenarios: scenarios,
		ledger:    ledger,
	}
}

// OpenResult is the state handed to the booking form when the action opens.
type OpenResult struct {
	Line *domain.BankLine
	// DefaultScenario is the active scenario for the line's company, when
	// one exists.
	DefaultScenario *domain.Scenario
	// ClearedScenario is set when a previously selected scenario no longer
	// exists; the selection is cleared with a warning instead of failing.
	ClearedScenario bool
	Warning         string
}

// Open validates the selection before the booking form is shown. A missing
// bank line is a stale reference; a missing previously selected scenario
// clears the selection with a warning.
func (uc *BankLineUseCase) Open(ctx context.Context, bankLineID, selectedScenarioID string) (*OpenResult, error) {
	line, err := uc.bankLines.GetByID(ctx, bankLineID)
	if errors.Is(err, domain.ErrBankLineNotFound) {
		return nil, &domain.StaleReferenceError{Kind: "bank statement line", ID: bankLineID}
	}
	if err != nil {
		return nil, err
	}

	if line.Reconciled {
		return nil, domain.ErrAlreadyReconciled
	}

	result := &OpenResult{Line: line}

	if selectedScenarioID != "" {
		if _, err := uc.scenarios.GetByID(ctx, selectedScenarioID); errors.Is(err, domain.ErrScenarioNotFound) {
			result.ClearedScenario = true
			result.Warning = "The selected scenario no longer exists and was cleared."
		} else if err != nil {
			return nil, err
		}
	}

	if active, err := uc.scenarios.FindActiveBySourceCompany(ctx, line.CompanyID); err == nil {
		result.DefaultScenario = active
	} else if !errors.Is(err, domain.ErrScenarioNotFound) {
		return nil, err
	}

	return result, nil
}

// Get retrieves a bank line by ID.
func (uc *BankLineUseCase) Get(ctx context.Context, id string) (*domain.BankLine, error) {
	return uc.bankLines.GetByID(ctx, id)
}

// ListGeneratedEntries returns the journal entries spawned by a bank line.
func (uc *BankLineUseCase) ListGeneratedEntries(ctx context.Context, bankLineID string) ([]*domain.JournalEntry, error) {
	line, err := uc.bankLines.GetByID(ctx, bankLineID)
	if err != nil {
		return nil, err
	}

	if len(line.GeneratedEntryIDs) == 0 {
		return []*domain.JournalEntry{}, nil
	}

	return uc.ledger.GetEntries(ctx, line.GeneratedEntryIDs)
}
