package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/metrics"
)

// SignPolicy controls how a negative (outflow) bank amount maps onto the
// declared debit/credit accounts of a scenario.
type SignPolicy string

const (
	// SignPolicySwap swaps debit and credit accounts for inflows; scenarios
	// declare their accounts for the outflow case.
	SignPolicySwap SignPolicy = "swap"
	// SignPolicyLiteral always posts the accounts as declared.
	SignPolicyLiteral SignPolicy = "literal"
)

// BookingUseCase is the posting engine: it turns one bank line plus an
// allocation (shares, scenario or template) into balanced, posted journal
// entries across companies, links them back to the line, and drives the
// offset/reconciliation step.
type BookingUseCase struct {
	txManager   TransactionManager
	bankLines   BankLineRepository
	ledger      LedgerStore
	scenarios   ScenarioRepository
	attachments AttachmentStore
	audit       AuditRepository
	resolver    *Resolver
	offset      OffsetCoordinator
	idGen       IDGenerator
	logger      zerolog.Logger
	metrics     *metrics.Metrics

	signPolicy   SignPolicy
	quickEnabled bool
}

// NewBookingUseCase creates a new BookingUseCase.
func NewBookingUseCase(
	txManager TransactionManager,
	bankLines BankLineRepository,
	ledger LedgerStore,
	scenarios ScenarioRepository,
	attachments AttachmentStore,
	audit AuditRepository,
	resolver *Resolver,
	offset OffsetCoordinator,
	idGen IDGenerator,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
	signPolicy SignPolicy,
	quickEnabled bool,
) *BookingUseCase {
	return &BookingUseCase{
		txManager:    txManager,
		bankLines:    bankLines,
		ledger:       ledger,
		scenarios:    scenarios,
		attachments:  attachments,
		audit:        audit,
		resolver:     resolver,
		offset:       offset,
		idGen:        idGen,
		logger:       logger,
		metrics:      metrics,
		signPolicy:   signPolicy,
		quickEnabled: quickEnabled,
	}
}

// AttachmentInput is an optional document recorded against every generated
// entry.
type AttachmentInput struct {
	Filename string
	Data     []byte
}

// AllocateInput represents one allocate action over a bank line.
type AllocateInput struct {
	BankLineID        string
	Shares            []domain.AllocationShare
	RefText           string
	ClearingAccountID string
	Attachment        *AttachmentInput
	RequestID         string
}

// BookInput represents one scenario or template booking over a bank line.
type BookInput struct {
	BankLineID string
	ScenarioID string
	Template   string
	Reference  string
	Attachment *AttachmentInput
	RequestID  string
}

// BookingResult is the outcome of one allocate/book action.
type BookingResult struct {
	Entries            []*domain.JournalEntry
	Offset             OffsetResult
	AttachmentWarnings []string
}

// Allocate splits the bank line amount across companies per the share set
// and commits one intercompany entry pair per non-zero share. All ledger
// mutations of one action happen in one transaction; any failure rolls back
// every entry created so far.
func (uc *BookingUseCase) Allocate(ctx context.Context, input AllocateInput) (*BookingResult, error) {
	start := time.Now()

	line, err := uc.bankLines.GetByID(ctx, input.BankLineID)
	if err != nil {
		return nil, err
	}

	if err := line.CanAllocate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateShares(input.Shares); err != nil {
		return nil, err
	}

	amounts := domain.SplitAmount(line.Amount, input.Shares)

	// Resolve every target before touching the ledger: a missing account for
	// any share aborts the whole request.
	targets := make([]*PostingTargets, len(input.Shares))
	for i, share := range input.Shares {
		t, err := uc.resolver.ResolveShare(ctx, line, share)
		if err != nil {
			return nil, err
		}
		targets[i] = t
	}

	opts := OffsetOptions{ClearingAccountID: input.ClearingAccountID}
	if len(targets) > 0 {
		opts.SourceCreditAccountID = uc.sourceCreditAccount(line.Amount, targets[0]).ID
	}

	plan, err := uc.offset.Prepare(ctx, line, opts)
	if err != nil {
		uc.recordAudit(ctx, nil, domain.AuditActionAllocate, line.ID, input.RequestID, nil, err)
		return nil, err
	}

	date := entryDate(line)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var entries []*domain.JournalEntry
	var firstSource *domain.JournalEntry

	for i := range input.Shares {
		if amounts[i].IsZero() {
			continue
		}

		src, dst, err := uc.createPair(ctx, tx, line, targets[i], amounts[i], date, input.RefText)
		if err != nil {
			return nil, err
		}
		if firstSource == nil {
			firstSource = src
		}
		entries = append(entries, src, dst)
	}

	if err := uc.offset.Execute(ctx, tx, plan, line.Amount, date, input.RefText); err != nil {
		return nil, err
	}

	entryIDs := collectIDs(entries)
	if err := uc.bankLines.AppendGeneratedEntries(ctx, tx, line.ID, entryIDs); err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, tx, domain.AuditActionAllocate, line.ID, input.RequestID, entryIDs, nil)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := &BookingResult{Entries: entries}
	result.AttachmentWarnings = uc.recordAttachments(ctx, entries, input.Attachment)
	result.Offset = uc.offset.Finalize(ctx, plan, firstSource)
	uc.observeBooking("allocate", start, result)

	return result, nil
}

// Book posts the full bank line amount through a configured scenario or a
// fixed quick template.
func (uc *BookingUseCase) Book(ctx context.Context, input BookInput) (*BookingResult, error) {
	start := time.Now()

	line, err := uc.bankLines.GetByID(ctx, input.BankLineID)
	if err != nil {
		return nil, err
	}

	if err := line.CanAllocate(); err != nil {
		return nil, err
	}

	if input.Template != "" {
		return uc.bookTemplate(ctx, line, input)
	}

	scenario, err := uc.scenarios.GetByID(ctx, input.ScenarioID)
	if err != nil {
		return nil, err
	}

	targets, err := uc.resolver.ResolveScenario(ctx, line, scenario)
	if err != nil {
		return nil, err
	}

	plan, err := uc.offset.Prepare(ctx, line, OffsetOptions{SourceCreditAccountID: targets.SourceCredit.ID})
	if err != nil {
		uc.recordAudit(ctx, nil, domain.AuditActionBook, line.ID, input.RequestID, nil, err)
		return nil, err
	}

	date := entryDate(line)
	amount := line.Amount.Abs()
	desc := line.Description()

	srcDebit, srcCredit := targets.SourceDebit, targets.SourceCredit
	dstDebit, dstCredit := targets.DestDebit, targets.DestCredit
	if uc.signPolicy == SignPolicySwap && line.Amount.IsPositive() {
		srcDebit, srcCredit = srcCredit, srcDebit
		dstDebit, dstCredit = dstCredit, dstDebit
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	srcRef := composeRef(input.Reference, fmt.Sprintf("Interco AR to %s: %s", targets.DestCompany.Name, desc))
	srcEntry := domain.NewTwoLineEntry(targets.SourceCompany.ID, targets.SourceJournal.ID, date, srcRef, input.Reference, srcDebit.ID, srcCredit.ID, amount, targets.DestCompany.PartnerID)
	if err := uc.postEntry(ctx, tx, srcEntry); err != nil {
		return nil, err
	}

	dstRef := composeRef(input.Reference, fmt.Sprintf("Interco AP from %s: %s", targets.SourceCompany.Name, desc))
	dstEntry := domain.NewTwoLineEntry(targets.DestCompany.ID, targets.DestJournal.ID, date, dstRef, input.Reference, dstDebit.ID, dstCredit.ID, amount, targets.SourceCompany.PartnerID)
	if err := uc.postEntry(ctx, tx, dstEntry); err != nil {
		return nil, err
	}

	if err := uc.offset.Execute(ctx, tx, plan, line.Amount, date, input.Reference); err != nil {
		return nil, err
	}

	entries := []*domain.JournalEntry{srcEntry, dstEntry}
	entryIDs := collectIDs(entries)
	if err := uc.bankLines.AppendGeneratedEntries(ctx, tx, line.ID, entryIDs); err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, tx, domain.AuditActionBook, line.ID, input.RequestID, entryIDs, nil)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := &BookingResult{Entries: entries}
	result.AttachmentWarnings = uc.recordAttachments(ctx, entries, input.Attachment)
	result.Offset = uc.offset.Finalize(ctx, plan, srcEntry)
	uc.observeBooking("scenario", start, result)

	return result, nil
}

func (uc *BookingUseCase) bookTemplate(ctx context.Context, line *domain.BankLine, input BookInput) (*BookingResult, error) {
	start := time.Now()

	if !uc.quickEnabled {
		return nil, domain.ErrQuickBookingDisabled
	}

	targets, err := uc.resolver.ResolveTemplate(ctx, line, input.Template)
	if err != nil {
		return nil, err
	}

	opts := OffsetOptions{SourceCreditAccountID: uc.sourceCreditAccount(line.Amount, targets).ID}
	plan, err := uc.offset.Prepare(ctx, line, opts)
	if err != nil {
		uc.recordAudit(ctx, nil, domain.AuditActionBook, line.ID, input.RequestID, nil, err)
		return nil, err
	}

	date := entryDate(line)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	src, dst, err := uc.createPair(ctx, tx, line, targets, line.Amount, date, input.Reference)
	if err != nil {
		return nil, err
	}

	if err := uc.offset.Execute(ctx, tx, plan, line.Amount, date, input.Reference); err != nil {
		return nil, err
	}

	entries := []*domain.JournalEntry{src, dst}
	entryIDs := collectIDs(entries)
	if err := uc.bankLines.AppendGeneratedEntries(ctx, tx, line.ID, entryIDs); err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, tx, domain.AuditActionBook, line.ID, input.RequestID, entryIDs, nil)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := &BookingResult{Entries: entries}
	result.AttachmentWarnings = uc.recordAttachments(ctx, entries, input.Attachment)
	result.Offset = uc.offset.Finalize(ctx, plan, src)
	uc.observeBooking("template", start, result)

	return result, nil
}

// createPair commits the reciprocal intercompany entry pair for one share
// amount. For outflows (negative amounts) both companies debit their expense
// account and credit the intercompany account; inflows reverse both sides.
func (uc *BookingUseCase) createPair(ctx context.Context, tx Transaction, line *domain.BankLine, targets *PostingTargets, amount decimal.Decimal, date time.Time, refText string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	absAmount := amount.Abs()
	desc := line.Description()

	srcDebit, srcCredit := targets.Source.ExpenseAccount, targets.Source.IntercoAccount
	dstDebit, dstCredit := targets.Dest.ExpenseAccount, targets.Dest.IntercoAccount
	if amount.IsPositive() {
		srcDebit, srcCredit = srcCredit, srcDebit
		dstDebit, dstCredit = dstCredit, dstDebit
	}

	srcLabel := fmt.Sprintf("Intercompany AR to %s", targets.Dest.Company.Name)
	srcRef := composeRef(refText, fmt.Sprintf("Interco AR to %s: %s", targets.Dest.Company.Name, desc))
	srcEntry := domain.NewTwoLineEntry(targets.Source.Company.ID, targets.Source.Journal.ID, date, srcRef, srcLabel, srcDebit.ID, srcCredit.ID, absAmount, targets.Dest.Company.PartnerID)
	if err := uc.postEntry(ctx, tx, srcEntry); err != nil {
		return nil, nil, err
	}

	dstLabel := fmt.Sprintf("Intercompany AP to %s", targets.Source.Company.Name)
	dstRef := composeRef(refText, fmt.Sprintf("Interco AP from %s: %s", targets.Source.Company.Name, desc))
	dstEntry := domain.NewTwoLineEntry(targets.Dest.Company.ID, targets.Dest.Journal.ID, date, dstRef, dstLabel, dstDebit.ID, dstCredit.ID, absAmount, targets.Source.Company.PartnerID)
	if err := uc.postEntry(ctx, tx, dstEntry); err != nil {
		return nil, nil, err
	}

	return srcEntry, dstEntry, nil
}

// postEntry assigns ids, validates the double-entry invariant and commits
// the entry as posted. Entries are created under the authority of their
// owning company; the ledger store applies company-scoped validation.
func (uc *BookingUseCase) postEntry(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error {
	entry.ID = uc.idGen.Generate()
	for i := range entry.Lines {
		entry.Lines[i].ID = uc.idGen.Generate()
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := uc.ledger.CreateEntry(ctx, tx, entry); err != nil {
		return err
	}

	if err := uc.ledger.Post(ctx, tx, entry.ID); err != nil {
		return err
	}
	entry.State = domain.EntryStatePosted

	return nil
}

// recordAttachments creates one attachment per generated entry. Attachment
// failures never fail the action and never touch the ledger again; they are
// logged and reported as warnings.
func (uc *BookingUseCase) recordAttachments(ctx context.Context, entries []*domain.JournalEntry, input *AttachmentInput) []string {
	if input == nil || len(input.Data) == 0 {
		return nil
	}

	var warnings []string
	for _, entry := range entries {
		att := &domain.Attachment{
			ID:       uc.idGen.Generate(),
			Filename: input.Filename,
			Data:     input.Data,
			EntryID:  entry.ID,
		}
		if err := uc.attachments.Create(ctx, att); err != nil {
			uc.logger.Warn().
				Err(err).
				Str("entry_id", entry.ID).
				Str("filename", input.Filename).
				Msg("attachment creation failed")
			warnings = append(warnings, fmt.Sprintf("attachment for entry %s not recorded: %v", entry.ID, err))
			if uc.metrics != nil {
				uc.metrics.AttachmentFailures.Inc()
			}
			continue
		}
		if uc.metrics != nil {
			uc.metrics.AttachmentsRecorded.Inc()
		}
	}

	return warnings
}

func (uc *BookingUseCase) observeBooking(mode string, start time.Time, result *BookingResult) {
	if uc.metrics == nil {
		return
	}

	if mode == "allocate" {
		uc.metrics.AllocationsCreated.Inc()
	} else {
		uc.metrics.BookingsCreated.WithLabelValues(mode).Inc()
	}

	uc.metrics.EntriesPosted.Add(float64(len(result.Entries)))
	uc.metrics.BookingDuration.Observe(time.Since(start).Seconds())

	if result.Offset.SkipReason != "" {
		uc.metrics.OffsetsSkipped.WithLabelValues(result.Offset.Strategy).Inc()
	} else {
		uc.metrics.OffsetsExecuted.WithLabelValues(result.Offset.Strategy).Inc()
	}
}

func (uc *BookingUseCase) sourceCreditAccount(amount decimal.Decimal, targets *PostingTargets) *domain.Account {
	if amount.IsPositive() {
		return targets.Source.ExpenseAccount
	}
	return targets.Source.IntercoAccount
}

func (uc *BookingUseCase) recordAudit(ctx context.Context, tx Transaction, action domain.AuditAction, bankLineID, requestID string, entryIDs []string, actionErr error) {
	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "bank_line",
		ResourceID:   bankLineID,
		RequestID:    requestID,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
	if len(entryIDs) > 0 {
		log.Detail = domain.JSON{"entry_ids": entryIDs}
	}
	if actionErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = actionErr.Error()
	}

	var err error
	if tx != nil {
		err = uc.audit.CreateTx(ctx, tx, log)
	} else {
		err = uc.audit.Create(ctx, log)
	}
	if err != nil {
		uc.logger.Warn().Err(err).Str("action", log.Action).Msg("audit log not recorded")
	}
}

func entryDate(line *domain.BankLine) time.Time {
	if !line.Date.IsZero() {
		return line.Date
	}
	return time.Now().UTC()
}

// composeRef joins the user-supplied reference text with a generated suffix.
func composeRef(refText, suffix string) string {
	parts := make([]string, 0, 2)
	if refText != "" {
		parts = append(parts, refText)
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, " | ")
}

func collectIDs(entries []*domain.JournalEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
