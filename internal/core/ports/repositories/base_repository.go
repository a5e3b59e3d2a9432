package repositories

import "context"

// TransactionManager runs a unit of work inside one database transaction.
// Calls made with the ctx passed to fn join that transaction; a nested
// WithinTx call reuses the outer transaction instead of opening a new one.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
