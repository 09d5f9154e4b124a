package postgres

import (
	"context"
)

// RetryingReconciliationService wraps the reconciliation repository with
// backoff retries. Reconciling touches entry_lines and bank_statement_lines
// in one transaction, which makes it the most deadlock-prone write path.
type RetryingReconciliationService struct {
	inner   *ReconciliationRepository
	retrier *Retrier
}

// NewRetryingReconciliationService creates a new RetryingReconciliationService.
func NewRetryingReconciliationService(inner *ReconciliationRepository, retrier *Retrier) *RetryingReconciliationService {
	return &RetryingReconciliationService{inner: inner, retrier: retrier}
}

// Reconcile marks the entry line and the bank line reconciled, retrying on
// transient database failures.
func (s *RetryingReconciliationService) Reconcile(ctx context.Context, bankLineID, entryLineID string) error {
	return s.retrier.Retry(ctx, func() error {
		return s.inner.Reconcile(ctx, bankLineID, entryLineID)
	})
}

// ProposeCounterpart records a counterpart proposal, retrying on transient
// database failures.
func (s *RetryingReconciliationService) ProposeCounterpart(ctx context.Context, bankLineID, entryLineID string, keepExisting bool) error {
	return s.retrier.Retry(ctx, func() error {
		return s.inner.ProposeCounterpart(ctx, bankLineID, entryLineID, keepExisting)
	})
}
