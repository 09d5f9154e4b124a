package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankLine is one imported bank statement transaction. It is created by the
// bank feed import; this service only appends generated-entry references and
// a reconciliation annotation to it.
type BankLine struct {
	ID         string
	CompanyID  string
	JournalID  string
	MoveID     string // originating journal entry, set once the line is posted
	Amount     decimal.Decimal
	Currency   string
	Name       string
	PaymentRef string
	Date       time.Time
	Reconciled bool

	// GeneratedEntryIDs is the append-only set of journal entries this line
	// spawned.
	GeneratedEntryIDs []string
}

// Description returns the free-text reference carried into entry narratives.
func (l *BankLine) Description() string {
	if l.PaymentRef != "" {
		return l.PaymentRef
	}
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// CanAllocate checks the line is usable as posting input.
func (l *BankLine) CanAllocate() error {
	if l.Reconciled {
		return ErrAlreadyReconciled
	}
	if l.Amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}
