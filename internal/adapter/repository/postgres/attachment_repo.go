package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// AttachmentRepository implements usecase.AttachmentStore. The table is
// append-only; nothing in the booking flow updates or deletes attachments.
type AttachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

// Create inserts an attachment linked to a journal entry.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	createdAt := attachment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO attachments (id, filename, data, entry_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		attachment.ID, attachment.Filename, attachment.Data, attachment.EntryID,
		timeToPgTimestamptz(createdAt),
	)
	return err
}
