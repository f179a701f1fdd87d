package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/pkg/crypto"
	"wanderlite.backend/pkg/logger"
	"wanderlite.backend/pkg/tickets"
)

// BookingUsecase handles booking business logic
type BookingUsecase struct {
	bookingRepo   repositories.BookingRepository
	checklistRepo repositories.ChecklistRepository
	tickets       *tickets.Service
}

// NewBookingUsecase creates a new booking usecase. checklistRepo may be nil
// when packing suggestions are disabled.
func NewBookingUsecase(bookingRepo repositories.BookingRepository, checklistRepo repositories.ChecklistRepository, ticketSvc *tickets.Service) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:   bookingRepo,
		checklistRepo: checklistRepo,
		tickets:       ticketSvc,
	}
}

// BookingWithTicket pairs a created booking with its encrypted ticket token
type BookingWithTicket struct {
	Booking *entities.Booking `json:"booking"`
	Ticket  string            `json:"ticket,omitempty"`
}

// CreateBooking records a new booking and issues its ticket token
func (u *BookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, input *entities.CreateBookingInput) (*BookingWithTicket, error) {
	if !input.Type.Valid() {
		return nil, domainerrors.Validation("type must be flight, hotel or restaurant")
	}

	reference := input.Reference
	if reference == "" {
		ref, err := crypto.GenerateBookingRef(time.Now().UTC())
		if err != nil {
			return nil, err
		}
		reference = ref
	}

	data := input.Data
	if data.IsZero() {
		data = entities.MustDocument(`{}`)
	}

	booking := &entities.Booking{
		UserID:    userID,
		Type:      input.Type,
		Reference: reference,
		Data:      data,
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	u.suggestPackingList(ctx, booking)

	result := &BookingWithTicket{Booking: booking}
	if u.tickets != nil {
		token, err := u.tickets.Issue(tickets.Payload{
			BookingRef:  booking.Reference,
			ServiceType: string(booking.Type),
			IssuedAt:    time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
		result.Ticket = token
	}
	return result, nil
}

// suggestPackingList auto-generates the packing checklist for a fresh
// booking when its service details name a destination. Checklist failures
// never fail the booking; they are logged and absorbed.
func (u *BookingUsecase) suggestPackingList(ctx context.Context, booking *entities.Booking) {
	if u.checklistRepo == nil {
		return
	}
	var details struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal([]byte(booking.Data.String()), &details); err != nil || details.Destination == "" {
		return
	}

	items := generateChecklistItems(booking.UserID, booking.ID, details.Destination)
	if err := u.checklistRepo.CreateBatch(ctx, items); err != nil {
		logger.Warn(ctx, "packing checklist generation failed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("destination", details.Destination),
			zap.Error(err))
	}
}

// ListBookings returns the user's bookings, newest first
func (u *BookingUsecase) ListBookings(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Booking, error) {
	return u.bookingRepo.ListByUser(ctx, userID, limit)
}

// GetBooking returns one booking, hidden from non-owners
func (u *BookingUsecase) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entities.Booking, error) {
	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return booking, nil
}

// VerifyTicket decrypts a ticket token and resolves its booking
func (u *BookingUsecase) VerifyTicket(ctx context.Context, token string) (*entities.Booking, error) {
	if u.tickets == nil {
		return nil, domainerrors.ErrNotFound
	}
	payload, err := u.tickets.Verify(token)
	if err != nil {
		return nil, domainerrors.Validation("ticket token is invalid")
	}
	return u.bookingRepo.GetByReference(ctx, payload.BookingRef)
}
