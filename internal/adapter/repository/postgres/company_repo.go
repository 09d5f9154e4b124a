package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// CompanyRepository implements usecase.CompanyRepository.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// GetByID retrieves a company by ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(partner_id, ''), currency_code, created_at
		 FROM companies WHERE id = $1`, id))
}

// FindByName resolves a company by name, exact match first, then
// case-insensitive.
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	company, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(partner_id, ''), currency_code, created_at
		 FROM companies WHERE name = $1`, name))
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, err
	}

	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(partner_id, ''), currency_code, created_at
		 FROM companies WHERE name ILIKE $1 ORDER BY name LIMIT 1`, name))
}

func (r *CompanyRepository) scanOne(row pgx.Row) (*domain.Company, error) {
	var company domain.Company
	var createdAt pgtype.Timestamptz

	err := row.Scan(&company.ID, &company.Name, &company.PartnerID, &company.CurrencyCode, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}

	company.CreatedAt = createdAt.Time
	return &company, nil
}
