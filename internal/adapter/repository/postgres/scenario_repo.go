package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

const pgErrUniqueViolation = "23505"

// ScenarioRepository implements usecase.ScenarioRepository. A partial unique
// index on (source_company_id) WHERE active backs the one-active-per-source
// constraint, so concurrent activations race safely.
type ScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new ScenarioRepository.
func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

const scenarioColumns = `
	id, name, active, source_company_id, dest_company_id,
	source_journal_id, dest_journal_id,
	source_debit_account_id, source_credit_account_id,
	dest_debit_account_id, dest_credit_account_id,
	created_at, updated_at
`

// Create inserts a new scenario.
func (r *ScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO scenarios (
			id, name, active, source_company_id, dest_company_id,
			source_journal_id, dest_journal_id,
			source_debit_account_id, source_credit_account_id,
			dest_debit_account_id, dest_credit_account_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		scenario.ID, scenario.Name, scenario.Active,
		scenario.SourceCompanyID, scenario.DestCompanyID,
		scenario.SourceJournalID, scenario.DestJournalID,
		scenario.SourceDebitAccountID, scenario.SourceCreditAccountID,
		scenario.DestDebitAccountID, scenario.DestCreditAccountID,
		timeToPgTimestamptz(scenario.CreatedAt), timeToPgTimestamptz(scenario.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrScenarioConflict
	}
	return err
}

// GetByID retrieves a scenario by ID.
func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	return scanScenario(r.pool.QueryRow(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = $1`, id))
}

// List lists scenarios, optionally filtered by source company and active
// state.
func (r *ScenarioRepository) List(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios
		 WHERE ($1 = '' OR source_company_id = $1)
		   AND (NOT $2 OR active)
		 ORDER BY name, id`, sourceCompanyID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := make([]*domain.Scenario, 0)
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, rows.Err()
}

// FindActiveBySourceCompany returns the active scenario for a source company.
func (r *ScenarioRepository) FindActiveBySourceCompany(ctx context.Context, sourceCompanyID string) (*domain.Scenario, error) {
	return scanScenario(r.pool.QueryRow(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios
		 WHERE source_company_id = $1 AND active`, sourceCompanyID))
}

// SetActive updates a scenario's active flag. Activating a second scenario
// for the same source company violates the partial unique index.
func (r *ScenarioRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE scenarios SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if isUniqueViolation(err) {
		return domain.ErrScenarioConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScenarioNotFound
	}
	return nil
}

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var scenario domain.Scenario
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&scenario.ID, &scenario.Name, &scenario.Active,
		&scenario.SourceCompanyID, &scenario.DestCompanyID,
		&scenario.SourceJournalID, &scenario.DestJournalID,
		&scenario.SourceDebitAccountID, &scenario.SourceCreditAccountID,
		&scenario.DestDebitAccountID, &scenario.DestCreditAccountID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, err
	}

	scenario.CreatedAt = createdAt.Time
	scenario.UpdatedAt = updatedAt.Time
	return &scenario, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
