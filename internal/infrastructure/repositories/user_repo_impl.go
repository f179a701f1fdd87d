package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/schema"
)

const usersTable = "users"

var userColumnCandidates = []string{
	"email", "name", "phone", "password_hash", "role",
	"is_kyc_completed", "created_at", "updated_at",
}

// UserRepositoryImpl implements UserRepository with GORM. The users table is
// mostly stable, but is_kyc_completed is a later migration that some
// deployments never received, so reads and writes probe for it.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepos.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// Create inserts a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	db := GetDB(ctx, r.db)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = entities.UserRoleUser
	}

	cols := schema.Existing(ctx, db, usersTable, userColumnCandidates...)
	row := map[string]interface{}{
		"id":            user.ID.String(),
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}
	if cols["name"] {
		row["name"] = user.Name
	}
	if cols["phone"] {
		row["phone"] = user.Phone
	}
	if cols["role"] {
		row["role"] = string(user.Role)
	}
	if cols["is_kyc_completed"] {
		row["is_kyc_completed"] = user.IsKYCCompleted
	}
	if cols["created_at"] {
		row["created_at"] = user.CreatedAt
	}
	if cols["updated_at"] {
		row["updated_at"] = user.UpdatedAt
	}

	if err := db.WithContext(ctx).Table(usersTable).Create(row).Error; err != nil {
		if isDuplicateErr(err) {
			return domainErrors.ErrAlreadyExists
		}
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

type userRow struct {
	ID             string    `gorm:"column:id"`
	Email          string    `gorm:"column:email"`
	Name           string    `gorm:"column:name"`
	Phone          string    `gorm:"column:phone"`
	PasswordHash   string    `gorm:"column:password_hash"`
	Role           string    `gorm:"column:role"`
	IsKYCCompleted bool      `gorm:"column:is_kyc_completed"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (r *UserRepositoryImpl) getBy(ctx context.Context, where string, arg interface{}) (*entities.User, error) {
	db := GetDB(ctx, r.db)
	cols := schema.Existing(ctx, db, usersTable, userColumnCandidates...)

	parts := []string{"id", "email", "password_hash"}
	for _, c := range []string{"name", "phone", "role", "is_kyc_completed", "created_at", "updated_at"} {
		if cols[c] {
			parts = append(parts, c)
		}
	}

	var row userRow
	err := db.WithContext(ctx).Table(usersTable).
		Select(strings.Join(parts, ", ")).
		Where(where, arg).
		Limit(1).Scan(&row).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	if row.ID == "" {
		return nil, domainErrors.ErrNotFound
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	role := entities.UserRole(row.Role)
	if role == "" {
		role = entities.UserRoleUser
	}
	return &entities.User{
		ID:             id,
		Email:          row.Email,
		Name:           row.Name,
		Phone:          row.Phone,
		PasswordHash:   row.PasswordHash,
		Role:           role,
		IsKYCCompleted: row.IsKYCCompleted,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getBy(ctx, "id = ?", id.String())
}

// GetByEmail retrieves a user by email
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// SetKYCCompleted flips the denormalized users flag. The flag is a
// convenience mirror of kyc_details, never the source of truth, so a schema
// without the column makes this a silent no-op.
func (r *UserRepositoryImpl) SetKYCCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	db := GetDB(ctx, r.db)
	if !schema.HasAll(ctx, db, usersTable, "is_kyc_completed") {
		return nil
	}

	res := db.WithContext(ctx).Table(usersTable).
		Where("id = ?", id.String()).
		Update("is_kyc_completed", completed)
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
