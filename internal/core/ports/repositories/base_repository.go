package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// ScopeTransactor runs a function inside a serializable transaction bound to
// one administrative scope. All admin state transitions for a scope go through
// this, which is what makes owner uniqueness hold under concurrency. The
// implementation retries on serialization failures.
type ScopeTransactor interface {
	InScopeTx(ctx context.Context, scope domain.Scope, fn func(ctx context.Context) error) error
}
