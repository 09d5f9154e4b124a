package domain

import "time"

// Company represents one legal entity keeping its own books.
type Company struct {
	ID           string
	Name         string
	PartnerID    string // linked partner record used on intercompany lines
	CurrencyCode string
	CreatedAt    time.Time
}

// Account is one row of a company's chart of accounts.
type Account struct {
	ID         string
	CompanyID  string
	Code       string
	Name       string
	Deprecated bool
}

// Usable reports whether the account may be placed on a new entry line.
func (a *Account) Usable() error {
	if a.Deprecated {
		return ErrDeprecatedAccount
	}
	return nil
}

// JournalType classifies journals the way the posting targets are filtered.
type JournalType string

const (
	JournalTypeGeneral JournalType = "general"
	JournalTypeBank    JournalType = "bank"
	JournalTypeCash    JournalType = "cash"
)

// Journal groups entries within one company.
type Journal struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Type      JournalType

	// DefaultAccountID is the journal's own GL account (the bank account for
	// bank journals). OutstandingAccountID is the outstanding-payments
	// account used by the propose-counterpart strategy.
	DefaultAccountID     string
	OutstandingAccountID string
}

// BelongsTo checks company ownership before a journal is used as a posting
// target.
func (j *Journal) BelongsTo(companyID string) error {
	if j.CompanyID != companyID {
		return ErrForeignJournal
	}
	return nil
}
