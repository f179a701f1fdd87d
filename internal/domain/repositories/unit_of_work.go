package repositories

import (
	"context"
)

// UnitOfWork executes a function within one transaction scope, so every
// statement of a multi-statement write runs on the same acquired connection.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
