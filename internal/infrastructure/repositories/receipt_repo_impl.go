package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/models"
)

// ReceiptRepositoryImpl implements ReceiptRepository with GORM. Receipts are
// append-only evidence rows; nothing ever updates or deletes one.
type ReceiptRepositoryImpl struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepos.ReceiptRepository {
	return &ReceiptRepositoryImpl{db: db}
}

// Create appends one receipt row
func (r *ReceiptRepositoryImpl) Create(ctx context.Context, receipt *entities.Receipt) error {
	db := GetDB(ctx, r.db)

	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	model := &models.Receipt{
		ID:         receipt.ID,
		PaymentID:  receipt.PaymentID,
		UserID:     receipt.UserID,
		ReceiptURL: receipt.ReceiptURL,
		CreatedAt:  receipt.CreatedAt,
	}
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// ListByUser returns the user's receipts, newest first
func (r *ReceiptRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Receipt, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	db := GetDB(ctx, r.db)

	var rows []models.Receipt
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}

	receipts := make([]*entities.Receipt, 0, len(rows))
	for _, row := range rows {
		receipts = append(receipts, &entities.Receipt{
			ID:         row.ID,
			PaymentID:  row.PaymentID,
			UserID:     row.UserID,
			ReceiptURL: row.ReceiptURL,
			CreatedAt:  row.CreatedAt,
		})
	}
	return receipts, nil
}
