package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// BankLineRepository implements usecase.BankLineRepository.
type BankLineRepository struct {
	pool *pgxpool.Pool
}

// NewBankLineRepository creates a new BankLineRepository.
func NewBankLineRepository(pool *pgxpool.Pool) *BankLineRepository {
	return &BankLineRepository{pool: pool}
}

const bankLineColumns = `
	id, company_id, journal_id, COALESCE(move_id, ''), amount, currency,
	COALESCE(name, ''), COALESCE(payment_ref, ''), date, reconciled
`

// GetByID retrieves a bank statement line with its generated entry links.
func (r *BankLineRepository) GetByID(ctx context.Context, id string) (*domain.BankLine, error) {
	query := `SELECT ` + bankLineColumns + ` FROM bank_statement_lines WHERE id = $1`

	line, err := scanBankLine(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBankLineNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT entry_id FROM bank_line_entries WHERE bank_line_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		if err := rows.Scan(&entryID); err != nil {
			return nil, err
		}
		line.GeneratedEntryIDs = append(line.GeneratedEntryIDs, entryID)
	}

	return line, rows.Err()
}

// Exists reports whether a bank statement line exists.
func (r *BankLineRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bank_statement_lines WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// AppendGeneratedEntries links the given entries to the bank line inside the
// action transaction. Positions continue from the highest existing link, so
// repeated actions on the same line keep the append-only ordering.
func (r *BankLineRepository) AppendGeneratedEntries(ctx context.Context, tx usecase.Transaction, bankLineID string, entryIDs []string) error {
	if len(entryIDs) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()

	var next int
	err := pgxTx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM bank_line_entries WHERE bank_line_id = $1`,
		bankLineID).Scan(&next)
	if err != nil {
		return err
	}

	for i, entryID := range entryIDs {
		_, err := pgxTx.Exec(ctx,
			`INSERT INTO bank_line_entries (bank_line_id, entry_id, position) VALUES ($1, $2, $3)`,
			bankLineID, entryID, next+i)
		if err != nil {
			return err
		}
	}

	return nil
}

// MarkReconciled flags the bank statement line as reconciled.
func (r *BankLineRepository) MarkReconciled(ctx context.Context, bankLineID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bank_statement_lines SET reconciled = TRUE WHERE id = $1`, bankLineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankLineNotFound
	}
	return nil
}

func scanBankLine(row pgx.Row) (*domain.BankLine, error) {
	var line domain.BankLine
	var amount pgtype.Numeric
	var date pgtype.Timestamptz

	err := row.Scan(
		&line.ID, &line.CompanyID, &line.JournalID, &line.MoveID,
		&amount, &line.Currency, &line.Name, &line.PaymentRef,
		&date, &line.Reconciled,
	)
	if err != nil {
		return nil, err
	}

	line.Amount = numericToDecimal(amount)
	line.Date = date.Time

	return &line, nil
}
