package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/schema"
)

const bookingsTable = "bookings"

// maxListRows bounds every list-style read in this package. Deployments
// with years of history must not turn a profile page into a table scan.
const maxListRows = 200

var bookingColumnCandidates = []string{
	"user_id", "created_at",
	"service_type", "booking_ref", "service_details",
	"type", "reference", "data",
}

// bookingBlob is the envelope written into the data column when only the
// minimal layout (owner id plus blob) is available.
type bookingBlob struct {
	Type      entities.ServiceType `json:"type"`
	Reference string               `json:"reference"`
	Data      entities.Document    `json:"data"`
}

// BookingRepositoryImpl persists bookings against whichever physical layout
// the connected database has. Columns are probed fresh on every call; a row
// written under one layout and read back is byte-equal in its details
// payload regardless of the layout chosen.
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepos.BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

// Create inserts the booking using the richest layout the table supports:
// modern, then legacy, then the minimal owner-plus-blob fallback.
func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *entities.Booking) error {
	db := GetDB(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	cols := schema.Existing(ctx, db, bookingsTable, bookingColumnCandidates...)

	row := map[string]interface{}{
		"id":      booking.ID.String(),
		"user_id": booking.UserID.String(),
	}
	if cols["created_at"] {
		row["created_at"] = booking.CreatedAt
	}

	switch {
	case cols["service_type"] && cols["booking_ref"] && cols["service_details"]:
		row["service_type"] = string(booking.Type)
		row["booking_ref"] = booking.Reference
		row["service_details"] = booking.Data.String()
	case cols["type"] && cols["reference"] && cols["data"]:
		row["type"] = string(booking.Type)
		row["reference"] = booking.Reference
		row["data"] = booking.Data.String()
	default:
		blob, err := json.Marshal(bookingBlob{
			Type:      booking.Type,
			Reference: booking.Reference,
			Data:      booking.Data,
		})
		if err != nil {
			return err
		}
		row["data"] = string(blob)
	}

	if err := db.WithContext(ctx).Table(bookingsTable).Create(row).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

// bookingRow is the normalized scan target; the SELECT aliases whichever
// physical columns exist onto these names.
type bookingRow struct {
	ID        string    `gorm:"column:id"`
	UserID    string    `gorm:"column:user_id"`
	Type      string    `gorm:"column:service_type"`
	Reference string    `gorm:"column:booking_ref"`
	Data      string    `gorm:"column:service_details"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// selectExpr builds the column list for the layout at hand. The minimal
// layout selects only the blob; toEntity decodes it.
func bookingSelectExpr(cols map[string]bool) string {
	switch {
	case cols["service_type"] && cols["booking_ref"] && cols["service_details"]:
		return "id, user_id, service_type, booking_ref, service_details, created_at"
	case cols["type"] && cols["reference"] && cols["data"]:
		return "id, user_id, type AS service_type, reference AS booking_ref, data AS service_details, created_at"
	default:
		return "id, user_id, data AS service_details, created_at"
	}
}

func bookingRowToEntity(row bookingRow, minimal bool) (*entities.Booking, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return nil, err
	}

	b := &entities.Booking{
		ID:        id,
		UserID:    userID,
		CreatedAt: row.CreatedAt,
	}
	if minimal {
		var blob bookingBlob
		if err := json.Unmarshal([]byte(row.Data), &blob); err != nil {
			return nil, err
		}
		b.Type = blob.Type
		b.Reference = blob.Reference
		b.Data = blob.Data
		return b, nil
	}

	b.Type = entities.ServiceType(row.Type)
	b.Reference = row.Reference
	if b.Data, err = entities.NewDocument([]byte(row.Data)); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepositoryImpl) query(ctx context.Context) (*gorm.DB, bool) {
	db := GetDB(ctx, r.db)
	cols := schema.Existing(ctx, db, bookingsTable, bookingColumnCandidates...)
	minimal := !(cols["service_type"] && cols["booking_ref"] && cols["service_details"]) &&
		!(cols["type"] && cols["reference"] && cols["data"])
	q := db.WithContext(ctx).Table(bookingsTable).Select(bookingSelectExpr(cols))
	return q, minimal
}

// GetByID retrieves a booking by ID
func (r *BookingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	q, minimal := r.query(ctx)

	var row bookingRow
	err := q.Where("id = ?", id.String()).Limit(1).Scan(&row).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	if row.ID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return bookingRowToEntity(row, minimal)
}

// GetByReference retrieves a booking by its reference string. Under the
// minimal layout the reference lives inside the blob, so recent rows are
// scanned and decoded instead.
func (r *BookingRepositoryImpl) GetByReference(ctx context.Context, reference string) (*entities.Booking, error) {
	q, minimal := r.query(ctx)

	if minimal {
		var rows []bookingRow
		err := q.Order("created_at DESC").Limit(maxListRows).Scan(&rows).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		for _, row := range rows {
			b, err := bookingRowToEntity(row, true)
			if err != nil {
				continue
			}
			if b.Reference == reference {
				return b, nil
			}
		}
		return nil, domainErrors.ErrNotFound
	}

	// SELECT aliases do not apply inside the predicate, so the physical
	// reference column is probed again here.
	refColumn := "reference"
	if schema.HasAll(ctx, GetDB(ctx, r.db), bookingsTable, "booking_ref") {
		refColumn = "booking_ref"
	}

	var row bookingRow
	err := q.Where(refColumn+" = ?", reference).Limit(1).Scan(&row).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	if row.ID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return bookingRowToEntity(row, false)
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Booking, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	q, minimal := r.query(ctx)

	var rows []bookingRow
	err := q.Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}

	bookings := make([]*entities.Booking, 0, len(rows))
	for _, row := range rows {
		b, convErr := bookingRowToEntity(row, minimal)
		if convErr != nil {
			return nil, convErr
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ReferencesByUser returns the reference strings of the user's recent
// bookings. Payment correlation uses it for the legacy reference link.
func (r *BookingRepositoryImpl) ReferencesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	bookings, err := r.ListByUser(ctx, userID, maxListRows)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.Reference != "" {
			refs = append(refs, b.Reference)
		}
	}
	return refs, nil
}
