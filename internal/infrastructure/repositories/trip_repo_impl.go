package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/models"
)

// TripRepositoryImpl implements TripRepository with GORM. trips is a stable
// table, so a fixed model applies.
type TripRepositoryImpl struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *gorm.DB) domainRepos.TripRepository {
	return &TripRepositoryImpl{db: db}
}

func tripModelToEntity(m *models.Trip) (*entities.Trip, error) {
	itinerary, err := entities.NewDocument([]byte(m.ItineraryJSON))
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	images, err := entities.NewDocument([]byte(m.ImagesJSON))
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	var travelers null.Int
	if m.Travelers != nil {
		travelers = null.IntFrom(*m.Travelers)
	}
	return &entities.Trip{
		ID:          m.ID,
		UserID:      m.UserID,
		Destination: m.Destination,
		Days:        m.Days,
		Budget:      m.Budget,
		Currency:    m.Currency,
		TotalCost:   m.TotalCost,
		StartDate:   null.TimeFromPtr(m.StartDate),
		EndDate:     null.TimeFromPtr(m.EndDate),
		Travelers:   travelers,
		Itinerary:   itinerary,
		Images:      images,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   null.TimeFromPtr(m.UpdatedAt),
	}, nil
}

func tripEntityToModel(t *entities.Trip) *models.Trip {
	var travelers *int
	if t.Travelers.Valid {
		v := t.Travelers.Int
		travelers = &v
	}
	itinerary := t.Itinerary.String()
	if t.Itinerary.IsZero() {
		itinerary = "[]"
	}
	images := t.Images.String()
	if t.Images.IsZero() {
		images = "[]"
	}
	return &models.Trip{
		ID:            t.ID,
		UserID:        t.UserID,
		Destination:   t.Destination,
		Days:          t.Days,
		Budget:        t.Budget,
		Currency:      t.Currency,
		TotalCost:     t.TotalCost,
		StartDate:     t.StartDate.Ptr(),
		EndDate:       t.EndDate.Ptr(),
		Travelers:     travelers,
		ItineraryJSON: itinerary,
		ImagesJSON:    images,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt.Ptr(),
	}
}

// Create inserts a new trip
func (r *TripRepositoryImpl) Create(ctx context.Context, trip *entities.Trip) error {
	db := GetDB(ctx, r.db)

	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	if trip.Currency == "" {
		trip.Currency = "INR"
	}

	if err := db.WithContext(ctx).Create(tripEntityToModel(trip)).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// GetByID retrieves one trip by ID
func (r *TripRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Trip, error) {
	db := GetDB(ctx, r.db)

	var model models.Trip
	err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.StorageUnavailable(err)
	}
	return tripModelToEntity(&model)
}

// ListByUser returns a user's trips, newest first
func (r *TripRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Trip, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	db := GetDB(ctx, r.db)

	var rows []models.Trip
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}

	trips := make([]*entities.Trip, 0, len(rows))
	for i := range rows {
		trip, err := tripModelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// Update overwrites a stored trip
func (r *TripRepositoryImpl) Update(ctx context.Context, trip *entities.Trip) error {
	db := GetDB(ctx, r.db)

	now := time.Now().UTC()
	trip.UpdatedAt = null.TimeFrom(now)

	res := db.WithContext(ctx).
		Where("id = ?", trip.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(tripEntityToModel(trip))
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Delete removes a trip
func (r *TripRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Trip{})
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
