package usecase

import (
	"context"
	"time"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// BankLineRepository defines data access for bank statement lines.
type BankLineRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BankLine, error)
	Exists(ctx context.Context, id string) (bool, error)
	AppendGeneratedEntries(ctx context.Context, tx Transaction, bankLineID string, entryIDs []string) error
	MarkReconciled(ctx context.Context, bankLineID string) error
}

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	FindByName(ctx context.Context, name string) (*domain.Company, error)
}

// DirectoryRepository is the account/journal directory of each company's
// chart of accounts.
type DirectoryRepository interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)
	FindAccountByNameSubstring(ctx context.Context, companyID, text string) (*domain.Account, error)
	GetJournal(ctx context.Context, id string) (*domain.Journal, error)
	FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error)
	FindJournalByType(ctx context.Context, companyID string, journalType domain.JournalType) (*domain.Journal, error)
}

// LedgerStore commits journal entries to the host ledger. Implementations
// must reject unbalanced entries, deprecated accounts and closed fiscal
// periods with the corresponding domain errors.
type LedgerStore interface {
	CreateEntry(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	Post(ctx context.Context, tx Transaction, entryID string) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetEntries(ctx context.Context, ids []string) ([]*domain.JournalEntry, error)
}

// ScenarioRepository defines data access for booking scenarios.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *domain.Scenario) error
	GetByID(ctx context.Context, id string) (*domain.Scenario, error)
	List(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error)
	FindActiveBySourceCompany(ctx context.Context, sourceCompanyID string) (*domain.Scenario, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// AttachmentStore records supporting documents against generated entries.
type AttachmentStore interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
}

// ReconciliationService is the capability interface onto the host's bank
// reconciliation subsystem. A no-op implementation is injected when the
// capability is absent.
type ReconciliationService interface {
	// Reconcile marks the bank line as settled against the given entry line.
	Reconcile(ctx context.Context, bankLineID, entryLineID string) error
	// ProposeCounterpart hands an entry line to the reconciliation UI as the
	// proposed match for the bank line, stopping short of final confirmation.
	// Proposing the same counterpart twice must not corrupt state.
	ProposeCounterpart(ctx context.Context, bankLineID, entryLineID string, keepExisting bool) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
