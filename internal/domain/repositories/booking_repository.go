package repositories

import (
	"context"

	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations. Implementations adapt
// to whichever physical bookings layout the connected database has.
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	GetByReference(ctx context.Context, reference string) (*entities.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Booking, error)
	ReferencesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
