package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase/mocks"
)

func TestBankLineUseCase_Open(t *testing.T) {
	activeScenario := &domain.Scenario{
		ID: "scn-active", Active: true, SourceCompanyID: "co-alpha", DestCompanyID: "co-beta",
		SourceJournalID: "j1", DestJournalID: "j2",
		SourceDebitAccountID: "a1", SourceCreditAccountID: "a2",
		DestDebitAccountID: "a3", DestCreditAccountID: "a4",
	}

	t.Run("missing bank line is a stale reference", func(t *testing.T) {
		uc := usecase.NewBankLineUseCase(mocks.NewMockBankLineRepository(), mocks.NewMockScenarioRepository(), mocks.NewMockLedgerStore())

		_, err := uc.Open(context.Background(), "line-gone", "")
		var stale *domain.StaleReferenceError
		if !errors.As(err, &stale) {
			t.Fatalf("expected StaleReferenceError, got %v", err)
		}
		if stale.ID != "line-gone" {
			t.Errorf("stale reference id = %q, want line-gone", stale.ID)
		}
	})

	t.Run("reconciled line is rejected", func(t *testing.T) {
		lines := mocks.NewMockBankLineRepository()
		lines.Add(&domain.BankLine{ID: "line-1", CompanyID: "co-alpha", Amount: dec("10"), Reconciled: true})
		uc := usecase.NewBankLineUseCase(lines, mocks.NewMockScenarioRepository(), mocks.NewMockLedgerStore())

		_, err := uc.Open(context.Background(), "line-1", "")
		if !errors.Is(err, domain.ErrAlreadyReconciled) {
			t.Errorf("expected ErrAlreadyReconciled, got %v", err)
		}
	})

	t.Run("vanished selected scenario is cleared with a warning", func(t *testing.T) {
		lines := mocks.NewMockBankLineRepository()
		lines.Add(&domain.BankLine{ID: "line-1", CompanyID: "co-alpha", Amount: dec("10")})
		uc := usecase.NewBankLineUseCase(lines, mocks.NewMockScenarioRepository(), mocks.NewMockLedgerStore())

		result, err := uc.Open(context.Background(), "line-1", "scn-deleted")
		if err != nil {
			t.Fatalf("a stale scenario selection must not fail the open: %v", err)
		}
		if !result.ClearedScenario || result.Warning == "" {
			t.Errorf("result = %+v, want cleared selection with warning", result)
		}
	})

	t.Run("default scenario preselected", func(t *testing.T) {
		lines := mocks.NewMockBankLineRepository()
		lines.Add(&domain.BankLine{ID: "line-1", CompanyID: "co-alpha", Amount: dec("10")})
		scenarios := mocks.NewMockScenarioRepository()
		scenarios.Add(activeScenario)
		uc := usecase.NewBankLineUseCase(lines, scenarios, mocks.NewMockLedgerStore())

		result, err := uc.Open(context.Background(), "line-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.DefaultScenario == nil || result.DefaultScenario.ID != "scn-active" {
			t.Errorf("default scenario = %+v, want scn-active", result.DefaultScenario)
		}
		if result.ClearedScenario || result.Warning != "" {
			t.Errorf("unexpected warning: %+v", result)
		}
	})

	t.Run("valid selected scenario passes through", func(t *testing.T) {
		lines := mocks.NewMockBankLineRepository()
		lines.Add(&domain.BankLine{ID: "line-1", CompanyID: "co-alpha", Amount: dec("10")})
		scenarios := mocks.NewMockScenarioRepository()
		scenarios.Add(activeScenario)
		uc := usecase.NewBankLineUseCase(lines, scenarios, mocks.NewMockLedgerStore())

		result, err := uc.Open(context.Background(), "line-1", "scn-active")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ClearedScenario {
			t.Error("existing selection must not be cleared")
		}
	})
}

func TestBankLineUseCase_ListGeneratedEntries(t *testing.T) {
	lines := mocks.NewMockBankLineRepository()
	ledger := mocks.NewMockLedgerStore()
	uc := usecase.NewBankLineUseCase(lines, mocks.NewMockScenarioRepository(), ledger)

	t.Run("line without entries returns an empty list", func(t *testing.T) {
		lines.Add(&domain.BankLine{ID: "line-empty", CompanyID: "co-alpha", Amount: dec("10")})

		entries, err := uc.ListGeneratedEntries(context.Background(), "line-empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Errorf("entries = %v, want empty non-nil slice", entries)
		}
	})

	t.Run("linked entries are returned", func(t *testing.T) {
		ledger.Add(&domain.JournalEntry{ID: "je-1", State: domain.EntryStatePosted, Lines: []domain.EntryLine{
			{ID: "el-1", AccountID: "a1", Debit: dec("10")},
			{ID: "el-2", AccountID: "a2", Credit: dec("10")},
		}})
		ledger.Add(&domain.JournalEntry{ID: "je-2", State: domain.EntryStatePosted, Lines: []domain.EntryLine{
			{ID: "el-3", AccountID: "a3", Debit: dec("10")},
			{ID: "el-4", AccountID: "a4", Credit: dec("10")},
		}})
		lines.Add(&domain.BankLine{ID: "line-1", CompanyID: "co-alpha", Amount: dec("10"), GeneratedEntryIDs: []string{"je-1", "je-2"}})

		entries, err := uc.ListGeneratedEntries(context.Background(), "line-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("got %d entries, want 2", len(entries))
		}
	})

	t.Run("unknown line", func(t *testing.T) {
		_, err := uc.ListGeneratedEntries(context.Background(), "line-missing")
		if !errors.Is(err, domain.ErrBankLineNotFound) {
			t.Errorf("expected ErrBankLineNotFound, got %v", err)
		}
	})
}
