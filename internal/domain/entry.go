package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryState is the lifecycle state of a journal entry. Entries created by
// the booking flow are posted immediately; no draft review step exists.
type EntryState string

const (
	EntryStateDraft  EntryState = "draft"
	EntryStatePosted EntryState = "posted"
)

// EntryLine is one debit or credit posting within a journal entry.
type EntryLine struct {
	ID         string
	AccountID  string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	PartnerID  string
	Label      string
	Reconciled bool
}

// JournalEntry is a balanced set of lines within one company's books.
type JournalEntry struct {
	ID        string
	CompanyID string
	JournalID string
	Date      time.Time
	Ref       string
	State     EntryState
	Lines     []EntryLine
	CreatedAt time.Time
}

// Validate enforces the double-entry invariant: every line carries exactly
// one non-zero side, and debits equal credits across the entry.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return ErrUnbalancedEntry
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, line := range e.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return ErrInvalidLine
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return ErrInvalidLine
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalancedEntry
	}

	return nil
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// LineByAccount returns the first line on the given account, or nil.
func (e *JournalEntry) LineByAccount(accountID string) *EntryLine {
	for i := range e.Lines {
		if e.Lines[i].AccountID == accountID {
			return &e.Lines[i]
		}
	}
	return nil
}

// UnreconciledLineByAccount returns the first unreconciled line on the given
// account, or nil. Used to locate the counterpart candidate for the
// propose-counterpart strategy.
func (e *JournalEntry) UnreconciledLineByAccount(accountID string) *EntryLine {
	for i := range e.Lines {
		if e.Lines[i].AccountID == accountID && !e.Lines[i].Reconciled {
			return &e.Lines[i]
		}
	}
	return nil
}

// NewTwoLineEntry builds the canonical two-line entry of the booking flow:
// one line debits debitAccountID, one credits creditAccountID, both for the
// same amount and label. partnerID, when known, identifies the counterparty
// company's partner on both lines.
func NewTwoLineEntry(companyID, journalID string, date time.Time, ref, label string, debitAccountID, creditAccountID string, amount decimal.Decimal, partnerID string) *JournalEntry {
	return &JournalEntry{
		CompanyID: companyID,
		JournalID: journalID,
		Date:      date,
		Ref:       ref,
		State:     EntryStateDraft,
		Lines: []EntryLine{
			{
				AccountID: debitAccountID,
				Debit:     amount,
				Credit:    decimal.Zero,
				PartnerID: partnerID,
				Label:     label,
			},
			{
				AccountID: creditAccountID,
				Debit:     decimal.Zero,
				Credit:    amount,
				PartnerID: partnerID,
				Label:     label,
			},
		},
	}
}
