package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditInsert = `
	INSERT INTO audit_logs (
		id, action, resource_type, resource_id, request_id,
		detail, status, error_message, created_at
	) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)
`

// Create inserts a new audit log entry outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	detail, err := marshalDetail(log.Detail)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, auditInsert,
		log.ID, log.Action, log.ResourceType, log.ResourceID, log.RequestID,
		detail, log.Status, log.ErrorMessage, timeToPgTimestamptz(log.CreatedAt),
	)
	return err
}

// CreateTx inserts a new audit log entry inside the action transaction, so
// the log commits and rolls back with the action.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	detail, err := marshalDetail(log.Detail)
	if err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()
	_, err = pgxTx.Exec(ctx, auditInsert,
		log.ID, log.Action, log.ResourceType, log.ResourceID, log.RequestID,
		detail, log.Status, log.ErrorMessage, timeToPgTimestamptz(log.CreatedAt),
	)
	return err
}

// List retrieves audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, action, resource_type, resource_id, COALESCE(request_id, ''),
		        detail, status, COALESCE(error_message, ''), created_at
		 FROM audit_logs
		 WHERE ($1 = '' OR action = $1)
		   AND ($2 = '' OR resource_type = $2)
		   AND ($3 = '' OR resource_id = $3)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $4 OFFSET $5`,
		filter.Action, filter.ResourceType, filter.ResourceID, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanAuditLog(row pgx.Row) (*domain.AuditLog, error) {
	var log domain.AuditLog
	var detail []byte
	var createdAt pgtype.Timestamptz

	err := row.Scan(&log.ID, &log.Action, &log.ResourceType, &log.ResourceID,
		&log.RequestID, &detail, &log.Status, &log.ErrorMessage, &createdAt)
	if err != nil {
		return nil, err
	}

	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &log.Detail); err != nil {
			return nil, err
		}
	}
	log.CreatedAt = createdAt.Time

	return &log, nil
}

func marshalDetail(detail domain.JSON) ([]byte, error) {
	if detail == nil {
		return nil, nil
	}
	return json.Marshal(detail)
}
