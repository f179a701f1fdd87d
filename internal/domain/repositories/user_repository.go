package repositories

import (
	"context"

	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// SetKYCCompleted flips the users flag when the column exists; a schema
	// without the column makes this a no-op.
	SetKYCCompleted(ctx context.Context, id uuid.UUID, completed bool) error
}
