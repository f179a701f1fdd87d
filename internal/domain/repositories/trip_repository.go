package repositories

import (
	"context"

	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
)

// TripRepository defines trip data operations
type TripRepository interface {
	Create(ctx context.Context, trip *entities.Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Trip, error)
	// Update overwrites the stored row with the given trip.
	// Returns ErrNotFound when the trip does not exist.
	Update(ctx context.Context, trip *entities.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChecklistRepository defines packing checklist data operations
type ChecklistRepository interface {
	Create(ctx context.Context, item *entities.ChecklistItem) error
	CreateBatch(ctx context.Context, items []*entities.ChecklistItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ChecklistItem, error)
	// ListByUser returns a user's items, optionally filtered to one booking
	// or trip, ordered by category then item name.
	ListByUser(ctx context.Context, userID uuid.UUID, bookingID, tripID string, limit int) ([]*entities.ChecklistItem, error)
	// SetPacked flips the packed flag. Returns ErrNotFound on a missing row.
	SetPacked(ctx context.Context, id uuid.UUID, packed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
