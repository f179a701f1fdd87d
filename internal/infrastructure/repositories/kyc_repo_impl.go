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

// KYCRepositoryImpl implements KYCRepository with GORM. kyc_details and
// kyc_uploads are stable tables, so fixed models apply here.
type KYCRepositoryImpl struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) domainRepos.KYCRepository {
	return &KYCRepositoryImpl{db: db}
}

func kycModelToEntity(m *models.KYCDetail) *entities.KYCSubmission {
	sub := &entities.KYCSubmission{
		ID:                 m.ID,
		UserID:             m.UserID,
		FullName:           m.FullName,
		DateOfBirth:        m.DateOfBirth,
		Nationality:        m.Nationality,
		DocumentType:       m.DocumentType,
		DocumentNumber:     m.DocumentNumber,
		DocFrontPath:       null.StringFromPtr(m.DocFrontPath),
		DocBackPath:        null.StringFromPtr(m.DocBackPath),
		SelfiePath:         null.StringFromPtr(m.SelfiePath),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		SubmittedAt:        m.SubmittedAt,
		VerifiedAt:         null.TimeFromPtr(m.VerifiedAt),
	}
	return sub
}

// CreateSubmission inserts a new kyc_details row in pending state.
func (r *KYCRepositoryImpl) CreateSubmission(ctx context.Context, sub *entities.KYCSubmission) error {
	db := GetDB(ctx, r.db)

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	if sub.VerificationStatus == "" {
		sub.VerificationStatus = entities.VerificationStatusPending
	}

	model := &models.KYCDetail{
		ID:                 sub.ID,
		UserID:             sub.UserID,
		FullName:           sub.FullName,
		DateOfBirth:        sub.DateOfBirth,
		Nationality:        sub.Nationality,
		DocumentType:       sub.DocumentType,
		DocumentNumber:     sub.DocumentNumber,
		DocFrontPath:       sub.DocFrontPath.Ptr(),
		DocBackPath:        sub.DocBackPath.Ptr(),
		SelfiePath:         sub.SelfiePath.Ptr(),
		VerificationStatus: string(sub.VerificationStatus),
		SubmittedAt:        sub.SubmittedAt,
		VerifiedAt:         sub.VerifiedAt.Ptr(),
	}
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// GetSubmission retrieves one submission by ID
func (r *KYCRepositoryImpl) GetSubmission(ctx context.Context, id uuid.UUID) (*entities.KYCSubmission, error) {
	db := GetDB(ctx, r.db)

	var model models.KYCDetail
	err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.StorageUnavailable(err)
	}
	return kycModelToEntity(&model), nil
}

// LatestByUser returns the most recently submitted row for the user. That
// row alone defines the user's current verification status.
func (r *KYCRepositoryImpl) LatestByUser(ctx context.Context, userID uuid.UUID) (*entities.KYCSubmission, error) {
	db := GetDB(ctx, r.db)

	var model models.KYCDetail
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.StorageUnavailable(err)
	}
	return kycModelToEntity(&model), nil
}

// ListByStatus returns submissions in the given state, oldest first, so the
// review queue surfaces the longest-waiting users.
func (r *KYCRepositoryImpl) ListByStatus(ctx context.Context, status entities.VerificationStatus, limit int) ([]*entities.KYCSubmission, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	db := GetDB(ctx, r.db)

	var rows []models.KYCDetail
	err := db.WithContext(ctx).
		Where("verification_status = ?", string(status)).
		Order("submitted_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}

	subs := make([]*entities.KYCSubmission, 0, len(rows))
	for i := range rows {
		subs = append(subs, kycModelToEntity(&rows[i]))
	}
	return subs, nil
}

// UpdateStatus sets verification_status and verified_at together in one
// statement: verified_at is non-null exactly when the status is terminal.
func (r *KYCRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	db := GetDB(ctx, r.db)

	var verifiedAt *time.Time
	if status.Terminal() {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	res := db.WithContext(ctx).Model(&models.KYCDetail{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_status": string(status),
			"verified_at":         verifiedAt,
		})
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// CreateUpload appends one kyc_uploads row.
func (r *KYCRepositoryImpl) CreateUpload(ctx context.Context, upload *entities.KYCUpload) error {
	db := GetDB(ctx, r.db)

	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = time.Now().UTC()
	}

	model := &models.KYCUpload{
		ID:         upload.ID,
		UserID:     upload.UserID,
		Kind:       upload.Kind,
		Path:       upload.Path,
		UploadedAt: upload.UploadedAt,
	}
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}
