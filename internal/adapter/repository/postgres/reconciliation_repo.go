package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// ReconciliationRepository implements usecase.ReconciliationService on the
// host ledger's tables. It is wired only when the reconciliation capability
// is enabled; otherwise the noop coordinator runs.
type ReconciliationRepository struct {
	pool *pgxpool.Pool
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return &ReconciliationRepository{pool: pool}
}

// Reconcile settles the bank line against the given entry line: both sides
// are flagged reconciled in one transaction.
func (r *ReconciliationRepository) Reconcile(ctx context.Context, bankLineID, entryLineID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE entry_lines SET reconciled = TRUE WHERE id = $1`, entryLineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	tag, err = tx.Exec(ctx,
		`UPDATE bank_statement_lines SET reconciled = TRUE WHERE id = $1`, bankLineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankLineNotFound
	}

	return tx.Commit(ctx)
}

// ProposeCounterpart records the entry line as the proposed match for the
// bank line without settling anything. Re-proposing the same pair is a no-op;
// keepExisting controls whether other pending proposals on the line survive.
func (r *ReconciliationRepository) ProposeCounterpart(ctx context.Context, bankLineID, entryLineID string, keepExisting bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if !keepExisting {
		_, err := tx.Exec(ctx,
			`DELETE FROM reconciliation_proposals WHERE bank_line_id = $1 AND entry_line_id <> $2`,
			bankLineID, entryLineID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO reconciliation_proposals (bank_line_id, entry_line_id, created_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (bank_line_id, entry_line_id) DO NOTHING`,
		bankLineID, entryLineID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
