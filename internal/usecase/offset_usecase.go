package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// Offset strategy names.
const (
	StrategyMirror  = "mirror"
	StrategyPropose = "propose"
	StrategyNone    = "none"
)

// OffsetOptions carries per-request inputs into strategy preparation.
type OffsetOptions struct {
	// ClearingAccountID overrides the configured clearing/suspense account
	// (mirror strategy).
	ClearingAccountID string
	// SourceCreditAccountID is the account the source entry will credit; the
	// propose strategy requires it to match the bank journal's outstanding
	// payments account.
	SourceCreditAccountID string
}

// OffsetPlan is the prepared state a strategy threads through one action.
type OffsetPlan struct {
	line    *domain.BankLine
	refText string

	skipReason string

	bankAccount          *domain.Account
	clearingAccount      *domain.Account
	outstandingAccountID string

	offsetEntryID   string
	bankEntryLineID string
}

// OffsetResult reports what the reconciliation step actually did. A skipped
// best-effort reconciliation is an explicit outcome, never a swallowed
// failure.
type OffsetResult struct {
	Strategy      string `json:"strategy"`
	OffsetEntryID string `json:"offset_entry_id,omitempty"`
	Reconciled    bool   `json:"reconciled"`
	Proposed      bool   `json:"proposed"`
	SkipReason    string `json:"skip_reason,omitempty"`
}

// OffsetCoordinator links or reconciles the originating bank line against the
// generated entries. Prepare runs before any posting, Execute inside the
// action transaction, Finalize after commit.
type OffsetCoordinator interface {
	Name() string
	Prepare(ctx context.Context, line *domain.BankLine, opts OffsetOptions) (*OffsetPlan, error)
	Execute(ctx context.Context, tx Transaction, plan *OffsetPlan, total decimal.Decimal, date time.Time, refText string) error
	Finalize(ctx context.Context, plan *OffsetPlan, sourceEntry *domain.JournalEntry) OffsetResult
}

// MirrorCoordinator implements the mirror-and-reconcile strategy: one extra
// entry on the bank line's own journal offsets the bank GL account against a
// clearing/suspense account, then the bank line is reconciled against that
// entry's bank-account line on a best-effort basis.
type MirrorCoordinator struct {
	dir          DirectoryRepository
	ledger       LedgerStore
	recon        ReconciliationService
	idGen        IDGenerator
	clearingCode string
	logger       zerolog.Logger
}

// NewMirrorCoordinator creates a new MirrorCoordinator.
func NewMirrorCoordinator(dir DirectoryRepository, ledger LedgerStore, recon ReconciliationService, idGen IDGenerator, clearingCode string, logger zerolog.Logger) *MirrorCoordinator {
	return &MirrorCoordinator{
		dir:          dir,
		ledger:       ledger,
		recon:        recon,
		idGen:        idGen,
		clearingCode: clearingCode,
		logger:       logger,
	}
}

// Name returns the strategy name.
func (c *MirrorCoordinator) Name() string { return StrategyMirror }

// Prepare resolves the bank GL account and the clearing account. Missing
// configuration is not fatal here: the action proceeds unreconciled and the
// reason is reported in the result.
func (c *MirrorCoordinator) Prepare(ctx context.Context, line *domain.BankLine, opts OffsetOptions) (*OffsetPlan, error) {
	plan := &OffsetPlan{line: line}

	journal, err := c.dir.GetJournal(ctx, line.JournalID)
	if err != nil {
		return nil, err
	}

	if journal.DefaultAccountID == "" {
		plan.skipReason = fmt.Sprintf("bank journal %q has no default account", journal.Code)
		return plan, nil
	}

	bankAccount, err := c.dir.GetAccount(ctx, journal.DefaultAccountID)
	if err != nil {
		return nil, err
	}
	plan.bankAccount = bankAccount

	clearing, err := c.resolveClearing(ctx, line.CompanyID, opts.ClearingAccountID)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			plan.skipReason = cfgErr.Error()
			return plan, nil
		}
		return nil, err
	}
	plan.clearingAccount = clearing

	return plan, nil
}

func (c *MirrorCoordinator) resolveClearing(ctx context.Context, companyID, overrideID string) (*domain.Account, error) {
	if overrideID != "" {
		acc, err := c.dir.GetAccount(ctx, overrideID)
		if err != nil {
			return nil, err
		}
		if err := acc.Usable(); err != nil {
			return nil, err
		}
		return acc, nil
	}

	if c.clearingCode == "" {
		return nil, domain.NewConfigError(domain.RoleClearingAccount, companyID)
	}

	acc, err := c.dir.FindAccountByCode(ctx, companyID, c.clearingCode)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.NewConfigError(domain.RoleClearingAccount, companyID)
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Execute posts the mirroring entry on the bank journal for the full
// original amount.
func (c *MirrorCoordinator) Execute(ctx context.Context, tx Transaction, plan *OffsetPlan, total decimal.Decimal, date time.Time, refText string) error {
	if plan.skipReason != "" {
		return nil
	}

	debit, credit := decimal.Zero, total
	if total.IsNegative() {
		debit, credit = total.Abs(), decimal.Zero
	}

	bankLineID := c.idGen.Generate()
	entry := &domain.JournalEntry{
		ID:        c.idGen.Generate(),
		CompanyID: plan.line.CompanyID,
		JournalID: plan.line.JournalID,
		Date:      date,
		Ref:       composeRef(refText, "Auto offset for bank line "+plan.line.Description()),
		State:     domain.EntryStateDraft,
		Lines: []domain.EntryLine{
			{
				ID:        bankLineID,
				AccountID: plan.bankAccount.ID,
				Debit:     debit,
				Credit:    credit,
				Label:     "Bank mirror",
			},
			{
				ID:        c.idGen.Generate(),
				AccountID: plan.clearingAccount.ID,
				Debit:     credit,
				Credit:    debit,
				Label:     "Auto offset",
			},
		},
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := c.ledger.CreateEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := c.ledger.Post(ctx, tx, entry.ID); err != nil {
		return err
	}

	plan.offsetEntryID = entry.ID
	plan.bankEntryLineID = bankLineID

	return nil
}

// Finalize attempts the reconciliation. Failure leaves the entry posted and
// the bank line unreconciled, reported as a skip reason.
func (c *MirrorCoordinator) Finalize(ctx context.Context, plan *OffsetPlan, sourceEntry *domain.JournalEntry) OffsetResult {
	result := OffsetResult{Strategy: StrategyMirror, OffsetEntryID: plan.offsetEntryID}

	if plan.skipReason != "" {
		result.SkipReason = plan.skipReason
		return result
	}

	if err := c.recon.Reconcile(ctx, plan.line.ID, plan.bankEntryLineID); err != nil {
		c.logger.Warn().
			Err(err).
			Str("bank_line_id", plan.line.ID).
			Str("offset_entry_id", plan.offsetEntryID).
			Msg("offset entry posted but bank line not reconciled")
		result.SkipReason = err.Error()
		return result
	}

	result.Reconciled = true
	return result
}

// ProposeCoordinator implements the propose-counterpart strategy: strict
// preconditions before any posting, then the matching unreconciled line of
// the source entry is handed to the reconciliation subsystem as a proposed
// counterpart. Final confirmation remains a user action.
type ProposeCoordinator struct {
	dir    DirectoryRepository
	ledger LedgerStore
	recon  ReconciliationService
	logger zerolog.Logger
}

// NewProposeCoordinator creates a new ProposeCoordinator.
func NewProposeCoordinator(dir DirectoryRepository, ledger LedgerStore, recon ReconciliationService, logger zerolog.Logger) *ProposeCoordinator {
	return &ProposeCoordinator{
		dir:    dir,
		ledger: ledger,
		recon:  recon,
		logger: logger,
	}
}

// Name returns the strategy name.
func (c *ProposeCoordinator) Name() string { return StrategyPropose }

// Prepare enforces the strategy preconditions. Failures here are fatal and
// abort the action before any posting.
func (c *ProposeCoordinator) Prepare(ctx context.Context, line *domain.BankLine, opts OffsetOptions) (*OffsetPlan, error) {
	journal, err := c.dir.GetJournal(ctx, line.JournalID)
	if err != nil {
		return nil, err
	}

	if journal.OutstandingAccountID == "" {
		return nil, &domain.PreconditionError{
			Precondition: fmt.Sprintf("bank journal %q has no outstanding payments account configured", journal.Code),
		}
	}

	if opts.SourceCreditAccountID != "" && opts.SourceCreditAccountID != journal.OutstandingAccountID {
		return nil, &domain.PreconditionError{
			Precondition: "outstanding payments account does not match the scenario credit account",
		}
	}

	if line.MoveID == "" {
		return nil, &domain.PreconditionError{
			Precondition: "bank line has no posted journal entry",
		}
	}

	move, err := c.ledger.GetEntry(ctx, line.MoveID)
	if err != nil {
		return nil, err
	}
	if move.State != domain.EntryStatePosted {
		return nil, &domain.PreconditionError{
			Precondition: "the bank line's journal entry is not posted",
		}
	}

	hasEligible := false
	for _, ml := range move.Lines {
		if !ml.Reconciled {
			hasEligible = true
			break
		}
	}
	if !hasEligible {
		return nil, &domain.PreconditionError{
			Precondition: "the bank line's journal entry has no unreconciled line",
		}
	}

	return &OffsetPlan{line: line, outstandingAccountID: journal.OutstandingAccountID}, nil
}

// Execute is a no-op: this strategy creates no extra entry.
func (c *ProposeCoordinator) Execute(ctx context.Context, tx Transaction, plan *OffsetPlan, total decimal.Decimal, date time.Time, refText string) error {
	return nil
}

// Finalize locates the unreconciled outstanding-payments line on the source
// entry and proposes it as the counterpart.
func (c *ProposeCoordinator) Finalize(ctx context.Context, plan *OffsetPlan, sourceEntry *domain.JournalEntry) OffsetResult {
	result := OffsetResult{Strategy: StrategyPropose}

	if sourceEntry == nil {
		result.SkipReason = "no source entry was generated"
		return result
	}

	line := sourceEntry.UnreconciledLineByAccount(plan.outstandingAccountID)
	if line == nil {
		result.SkipReason = "no unreconciled line on the source entry matches the outstanding payments account"
		return result
	}

	if err := c.recon.ProposeCounterpart(ctx, plan.line.ID, line.ID, true); err != nil {
		c.logger.Warn().
			Err(err).
			Str("bank_line_id", plan.line.ID).
			Str("entry_line_id", line.ID).
			Msg("counterpart proposal failed after posting")
		result.SkipReason = err.Error()
		return result
	}

	result.Proposed = true
	return result
}

// NoopCoordinator is injected when the reconciliation capability is absent.
type NoopCoordinator struct{}

// NewNoopCoordinator creates a new NoopCoordinator.
func NewNoopCoordinator() *NoopCoordinator { return &NoopCoordinator{} }

// Name returns the strategy name.
func (c *NoopCoordinator) Name() string { return StrategyNone }

// Prepare returns a plan that skips all reconciliation work.
func (c *NoopCoordinator) Prepare(ctx context.Context, line *domain.BankLine, opts OffsetOptions) (*OffsetPlan, error) {
	return &OffsetPlan{line: line, skipReason: "reconciliation capability not available"}, nil
}

// Execute is a no-op.
func (c *NoopCoordinator) Execute(ctx context.Context, tx Transaction, plan *OffsetPlan, total decimal.Decimal, date time.Time, refText string) error {
	return nil
}

// Finalize reports the skipped reconciliation.
func (c *NoopCoordinator) Finalize(ctx context.Context, plan *OffsetPlan, sourceEntry *domain.JournalEntry) OffsetResult {
	return OffsetResult{Strategy: StrategyNone, SkipReason: plan.skipReason}
}
