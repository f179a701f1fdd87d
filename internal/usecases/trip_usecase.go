package usecases

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/domain/repositories"
)

// TripUsecase handles trip planning and packing checklist logic
type TripUsecase struct {
	tripRepo      repositories.TripRepository
	checklistRepo repositories.ChecklistRepository
}

// NewTripUsecase creates a new trip usecase
func NewTripUsecase(tripRepo repositories.TripRepository, checklistRepo repositories.ChecklistRepository) *TripUsecase {
	return &TripUsecase{
		tripRepo:      tripRepo,
		checklistRepo: checklistRepo,
	}
}

// CreateTrip records a new planned trip
func (u *TripUsecase) CreateTrip(ctx context.Context, userID uuid.UUID, input *entities.CreateTripInput) (*entities.Trip, error) {
	trip := &entities.Trip{
		UserID:      userID,
		Destination: input.Destination,
		Days:        input.Days,
		Budget:      input.Budget,
		Currency:    input.Currency,
		TotalCost:   input.TotalCost,
		StartDate:   null.TimeFromPtr(input.StartDate),
		EndDate:     null.TimeFromPtr(input.EndDate),
		Itinerary:   input.Itinerary,
	}
	if input.Travelers != nil {
		trip.Travelers = null.IntFrom(*input.Travelers)
	}
	if err := u.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns the user's trips, newest first
func (u *TripUsecase) ListTrips(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Trip, error) {
	return u.tripRepo.ListByUser(ctx, userID, limit)
}

// GetTrip returns one trip, hidden from non-owners
func (u *TripUsecase) GetTrip(ctx context.Context, userID, tripID uuid.UUID) (*entities.Trip, error) {
	trip, err := u.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return trip, nil
}

// UpdateTrip applies a partial update to an owned trip
func (u *TripUsecase) UpdateTrip(ctx context.Context, userID, tripID uuid.UUID, input *entities.UpdateTripInput) (*entities.Trip, error) {
	trip, err := u.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if input.Destination != nil {
		trip.Destination = *input.Destination
	}
	if input.Days != nil {
		trip.Days = *input.Days
	}
	if input.Budget != nil {
		trip.Budget = *input.Budget
	}
	if input.Currency != nil {
		trip.Currency = *input.Currency
	}
	if input.TotalCost != nil {
		trip.TotalCost = *input.TotalCost
	}
	if input.StartDate != nil {
		trip.StartDate = null.TimeFrom(*input.StartDate)
	}
	if input.EndDate != nil {
		trip.EndDate = null.TimeFrom(*input.EndDate)
	}
	if input.Travelers != nil {
		trip.Travelers = null.IntFrom(*input.Travelers)
	}
	if input.Itinerary != nil {
		trip.Itinerary = *input.Itinerary
	}
	if input.Images != nil {
		trip.Images = *input.Images
	}

	if err := u.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return u.GetTrip(ctx, userID, tripID)
}

// DeleteTrip removes an owned trip
func (u *TripUsecase) DeleteTrip(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := u.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}
	return u.tripRepo.Delete(ctx, tripID)
}

// AddChecklistItem records one user-added packing item
func (u *TripUsecase) AddChecklistItem(ctx context.Context, userID uuid.UUID, input *entities.CreateChecklistItemInput) (*entities.ChecklistItem, error) {
	item := &entities.ChecklistItem{
		UserID:   userID,
		ItemName: input.ItemName,
		Category: input.Category,
	}
	if input.BookingID != "" {
		item.BookingID = null.StringFrom(input.BookingID)
	}
	if input.TripID != "" {
		item.TripID = null.StringFrom(input.TripID)
	}
	if err := u.checklistRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListChecklist returns the user's items, optionally scoped to one booking
// or trip
func (u *TripUsecase) ListChecklist(ctx context.Context, userID uuid.UUID, bookingID, tripID string, limit int) ([]*entities.ChecklistItem, error) {
	return u.checklistRepo.ListByUser(ctx, userID, bookingID, tripID, limit)
}

// ToggleChecklistItem flips the packed flag on an owned item
func (u *TripUsecase) ToggleChecklistItem(ctx context.Context, userID, itemID uuid.UUID) (*entities.ChecklistItem, error) {
	item, err := u.checklistRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	if err := u.checklistRepo.SetPacked(ctx, itemID, !item.IsPacked); err != nil {
		return nil, err
	}
	item.IsPacked = !item.IsPacked
	return item, nil
}

// DeleteChecklistItem removes an owned item
func (u *TripUsecase) DeleteChecklistItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := u.checklistRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return domainerrors.ErrNotFound
	}
	return u.checklistRepo.Delete(ctx, itemID)
}

// generateChecklistItems builds the auto-suggested packing list for a
// destination, tied to the given booking. Categories are emitted in a
// stable order.
func generateChecklistItems(userID uuid.UUID, bookingID uuid.UUID, destination string) []*entities.ChecklistItem {
	template := packingTemplate(destination)

	categories := make([]string, 0, len(template))
	for category := range template {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var items []*entities.ChecklistItem
	for _, category := range categories {
		for _, name := range template[category] {
			items = append(items, &entities.ChecklistItem{
				UserID:          userID,
				BookingID:       null.StringFrom(bookingID.String()),
				ItemName:        name,
				Category:        category,
				IsAutoGenerated: true,
			})
		}
	}
	return items
}
