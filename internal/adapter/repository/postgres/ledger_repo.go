package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// LedgerRepository implements usecase.LedgerStore.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CreateEntry inserts a journal entry and its lines inside the action
// transaction. Deprecated accounts are rejected before any insert.
func (r *LedgerRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()

	for _, line := range entry.Lines {
		var deprecated bool
		err := pgxTx.QueryRow(ctx,
			`SELECT deprecated FROM accounts WHERE id = $1`, line.AccountID).Scan(&deprecated)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		if deprecated {
			return domain.ErrDeprecatedAccount
		}
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO journal_entries (id, company_id, journal_id, date, ref, state, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.CompanyID, entry.JournalID,
		timeToPgTimestamptz(entry.Date), entry.Ref, string(entry.State),
		timeToPgTimestamptz(createdAt),
	)
	if err != nil {
		return err
	}

	for i, line := range entry.Lines {
		_, err := pgxTx.Exec(ctx,
			`INSERT INTO entry_lines (id, entry_id, account_id, debit, credit, partner_id, label, reconciled, position)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
			line.ID, entry.ID, line.AccountID,
			decimalToNumeric(line.Debit), decimalToNumeric(line.Credit),
			line.PartnerID, line.Label, line.Reconciled, i,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Post moves a draft entry to the posted state.
func (r *LedgerRepository) Post(ctx context.Context, tx usecase.Transaction, entryID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE journal_entries SET state = 'posted' WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// GetEntry retrieves a journal entry with its lines, ordered by position.
func (r *LedgerRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	entries, err := r.GetEntries(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return entries[0], nil
}

// GetEntries retrieves journal entries by ID, preserving the input order.
func (r *LedgerRepository) GetEntries(ctx context.Context, ids []string) ([]*domain.JournalEntry, error) {
	if len(ids) == 0 {
		return []*domain.JournalEntry{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, company_id, journal_id, date, COALESCE(ref, ''), state, created_at
		 FROM journal_entries WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*domain.JournalEntry, len(ids))
	for rows.Next() {
		var entry domain.JournalEntry
		var state string
		var date, createdAt pgtype.Timestamptz

		if err := rows.Scan(&entry.ID, &entry.CompanyID, &entry.JournalID, &date, &entry.Ref, &state, &createdAt); err != nil {
			return nil, err
		}
		entry.Date = date.Time
		entry.CreatedAt = createdAt.Time
		entry.State = domain.EntryState(state)
		byID[entry.ID] = &entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.pool.Query(ctx,
		`SELECT id, entry_id, account_id, debit, credit, COALESCE(partner_id, ''), COALESCE(label, ''), reconciled
		 FROM entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, position`, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line domain.EntryLine
		var entryID string
		var debit, credit pgtype.Numeric

		if err := lineRows.Scan(&line.ID, &entryID, &line.AccountID, &debit, &credit, &line.PartnerID, &line.Label, &line.Reconciled); err != nil {
			return nil, err
		}
		line.Debit = numericToDecimal(debit)
		line.Credit = numericToDecimal(credit)

		if entry, ok := byID[entryID]; ok {
			entry.Lines = append(entry.Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	entries := make([]*domain.JournalEntry, 0, len(byID))
	for _, id := range ids {
		if entry, ok := byID[id]; ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
