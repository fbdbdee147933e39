package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes transaction control to repositories that need
// multi-statement atomicity, such as batch generation and structure
// supersession.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls the transaction back. Safe to defer after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
