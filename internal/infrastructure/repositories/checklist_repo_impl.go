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

// ChecklistRepositoryImpl implements ChecklistRepository with GORM.
type ChecklistRepositoryImpl struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db *gorm.DB) domainRepos.ChecklistRepository {
	return &ChecklistRepositoryImpl{db: db}
}

func checklistModelToEntity(m *models.ChecklistItem) *entities.ChecklistItem {
	return &entities.ChecklistItem{
		ID:              m.ID,
		UserID:          m.UserID,
		BookingID:       null.StringFromPtr(m.BookingID),
		TripID:          null.StringFromPtr(m.TripID),
		ItemName:        m.ItemName,
		Category:        m.Category,
		IsPacked:        m.IsPacked,
		IsAutoGenerated: m.IsAutoGenerated,
		CreatedAt:       m.CreatedAt,
	}
}

func checklistEntityToModel(item *entities.ChecklistItem) *models.ChecklistItem {
	return &models.ChecklistItem{
		ID:              item.ID,
		UserID:          item.UserID,
		BookingID:       item.BookingID.Ptr(),
		TripID:          item.TripID.Ptr(),
		ItemName:        item.ItemName,
		Category:        item.Category,
		IsPacked:        item.IsPacked,
		IsAutoGenerated: item.IsAutoGenerated,
		CreatedAt:       item.CreatedAt,
	}
}

func defaultChecklistFields(item *entities.ChecklistItem) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
}

// Create inserts one user-added item
func (r *ChecklistRepositoryImpl) Create(ctx context.Context, item *entities.ChecklistItem) error {
	db := GetDB(ctx, r.db)

	defaultChecklistFields(item)
	if err := db.WithContext(ctx).Create(checklistEntityToModel(item)).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// CreateBatch inserts generated items in one statement
func (r *ChecklistRepositoryImpl) CreateBatch(ctx context.Context, items []*entities.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)

	rows := make([]*models.ChecklistItem, 0, len(items))
	for _, item := range items {
		defaultChecklistFields(item)
		rows = append(rows, checklistEntityToModel(item))
	}
	if err := db.WithContext(ctx).Create(rows).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// GetByID retrieves one item
func (r *ChecklistRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.ChecklistItem, error) {
	db := GetDB(ctx, r.db)

	var model models.ChecklistItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.StorageUnavailable(err)
	}
	return checklistModelToEntity(&model), nil
}

// ListByUser returns a user's items ordered by category then name
func (r *ChecklistRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, bookingID, tripID string, limit int) ([]*entities.ChecklistItem, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	db := GetDB(ctx, r.db)

	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if bookingID != "" {
		q = q.Where("booking_id = ?", bookingID)
	}
	if tripID != "" {
		q = q.Where("trip_id = ?", tripID)
	}

	var rows []models.ChecklistItem
	if err := q.Order("category, item_name").Limit(limit).Find(&rows).Error; err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}

	items := make([]*entities.ChecklistItem, 0, len(rows))
	for i := range rows {
		items = append(items, checklistModelToEntity(&rows[i]))
	}
	return items, nil
}

// SetPacked flips the packed flag
func (r *ChecklistRepositoryImpl) SetPacked(ctx context.Context, id uuid.UUID, packed bool) error {
	db := GetDB(ctx, r.db)

	res := db.WithContext(ctx).
		Model(&models.ChecklistItem{}).
		Where("id = ?", id).
		Update("is_packed", packed)
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Delete removes an item
func (r *ChecklistRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.ChecklistItem{})
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
