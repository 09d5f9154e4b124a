package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// DirectoryRepository implements usecase.DirectoryRepository over the chart
// of accounts and journal tables.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

const accountColumns = `id, company_id, code, name, deprecated`

// GetAccount retrieves an account by ID.
func (r *DirectoryRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// FindAccountByCode finds an account by code within one company.
func (r *DirectoryRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE company_id = $1 AND code = $2
		 ORDER BY id LIMIT 1`, companyID, code))
}

// FindAccountByNameSubstring finds an account whose name contains the given
// text, case-insensitively, within one company.
func (r *DirectoryRepository) FindAccountByNameSubstring(ctx context.Context, companyID, text string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE company_id = $1 AND name ILIKE '%' || $2 || '%'
		 ORDER BY code, id LIMIT 1`, companyID, text))
}

const journalColumns = `id, company_id, code, name, type, COALESCE(default_account_id, ''), COALESCE(outstanding_account_id, '')`

// GetJournal retrieves a journal by ID.
func (r *DirectoryRepository) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	return scanJournal(r.pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE id = $1`, id))
}

// FindJournalByCode finds a journal by code within one company.
func (r *DirectoryRepository) FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error) {
	return scanJournal(r.pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals
		 WHERE company_id = $1 AND code = $2
		 ORDER BY id LIMIT 1`, companyID, code))
}

// FindJournalByType finds the first journal of the given type within one
// company.
func (r *DirectoryRepository) FindJournalByType(ctx context.Context, companyID string, journalType domain.JournalType) (*domain.Journal, error) {
	return scanJournal(r.pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals
		 WHERE company_id = $1 AND type = $2
		 ORDER BY id LIMIT 1`, companyID, string(journalType)))
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.CompanyID, &account.Code, &account.Name, &account.Deprecated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var journal domain.Journal
	var journalType string

	err := row.Scan(&journal.ID, &journal.CompanyID, &journal.Code, &journal.Name,
		&journalType, &journal.DefaultAccountID, &journal.OutstandingAccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}
		return nil, err
	}

	journal.Type = domain.JournalType(journalType)
	return &journal, nil
}
