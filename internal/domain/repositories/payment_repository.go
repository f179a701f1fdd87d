package repositories

import (
	"context"

	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations across schema variants
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	// LatestByBooking returns the most recent payment row for a booking; the
	// most recent row is authoritative for "active intent" status.
	LatestByBooking(ctx context.Context, bookingID uuid.UUID) (*entities.Payment, error)
	// ListByUser resolves payments through direct ownership, the legacy
	// reference-string link, or a reference join, in that order.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Payment, error)
	Complete(ctx context.Context, id uuid.UUID, externalRef string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
}

// ReceiptRepository defines append-only receipt tracking
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entities.Receipt) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Receipt, error)
}
