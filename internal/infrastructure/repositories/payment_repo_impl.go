package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/schema"
	"wanderlite.backend/pkg/logger"
)

const paymentsTable = "payments"

var paymentColumnCandidates = []string{
	"user_id", "booking_id", "booking_ref", "reference",
	"amount", "currency", "method", "status", "external_ref",
	"data", "created_at",
}

// paymentBlob is the envelope for the minimal owner-plus-blob layout.
type paymentBlob struct {
	BookingID   string  `json:"booking_id,omitempty"`
	BookingRef  string  `json:"booking_ref,omitempty"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	ExternalRef string  `json:"external_ref,omitempty"`
}

// PaymentRepositoryImpl persists payments across the structured and minimal
// payments layouts. It holds the booking repository because the legacy
// layouts link a payment to its booking by reference string rather than id,
// and resolving either direction crosses into booking data.
type PaymentRepositoryImpl struct {
	db       *gorm.DB
	bookings domainRepos.BookingRepository
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, bookings domainRepos.BookingRepository) domainRepos.PaymentRepository {
	return &PaymentRepositoryImpl{db: db, bookings: bookings}
}

// refColumn returns the physical reference-link column, or "" when the
// table has neither.
func paymentRefColumn(cols map[string]bool) string {
	if cols["booking_ref"] {
		return "booking_ref"
	}
	if cols["reference"] {
		return "reference"
	}
	return ""
}

// structured reports whether the table carries first-class payment columns;
// everything else uses the blob envelope.
func paymentStructured(cols map[string]bool) bool {
	return cols["amount"] && cols["status"]
}

// Create inserts the payment using whichever columns physically exist.
func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entities.Payment) error {
	db := GetDB(ctx, r.db)

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	if payment.Currency == "" {
		payment.Currency = entities.DefaultCurrency
	}
	if payment.Status == "" {
		payment.Status = entities.PaymentStatusPending
	}

	cols := schema.Existing(ctx, db, paymentsTable, paymentColumnCandidates...)

	row := map[string]interface{}{"id": payment.ID.String()}
	if cols["created_at"] {
		row["created_at"] = payment.CreatedAt
	}
	if cols["user_id"] && payment.UserID != nil {
		row["user_id"] = payment.UserID.String()
	}

	if paymentStructured(cols) {
		if cols["booking_id"] && payment.BookingID != nil {
			row["booking_id"] = payment.BookingID.String()
		}
		if refCol := paymentRefColumn(cols); refCol != "" && payment.BookingRef != "" {
			row[refCol] = payment.BookingRef
		}
		row["amount"] = payment.Amount
		row["status"] = string(payment.Status)
		if cols["currency"] {
			row["currency"] = payment.Currency
		}
		if cols["method"] {
			row["method"] = payment.Method
		}
		if cols["external_ref"] && payment.ExternalRef.Valid {
			row["external_ref"] = payment.ExternalRef.String
		}
	} else {
		blob := paymentBlob{
			BookingRef:  payment.BookingRef,
			Amount:      payment.Amount,
			Currency:    payment.Currency,
			Method:      payment.Method,
			Status:      string(payment.Status),
			ExternalRef: payment.ExternalRef.String,
		}
		if payment.BookingID != nil {
			blob.BookingID = payment.BookingID.String()
		}
		raw, err := json.Marshal(blob)
		if err != nil {
			return err
		}
		row["data"] = string(raw)
	}

	if err := db.WithContext(ctx).Table(paymentsTable).Create(row).Error; err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	return nil
}

type paymentRow struct {
	ID          string      `gorm:"column:id"`
	UserID      string      `gorm:"column:user_id"`
	BookingID   string      `gorm:"column:booking_id"`
	BookingRef  string      `gorm:"column:booking_ref"`
	Amount      float64     `gorm:"column:amount"`
	Currency    string      `gorm:"column:currency"`
	Method      string      `gorm:"column:method"`
	Status      string      `gorm:"column:status"`
	ExternalRef null.String `gorm:"column:external_ref"`
	Data        string      `gorm:"column:data"`
	CreatedAt   time.Time   `gorm:"column:created_at"`
}

// paymentSelectExpr builds the column list for the layout at hand. prefix
// qualifies columns when payments is joined against another table.
func paymentSelectExpr(cols map[string]bool, prefix string) string {
	if !paymentStructured(cols) {
		parts := []string{prefix + "id", prefix + "data"}
		if cols["user_id"] {
			parts = append(parts, prefix+"user_id")
		}
		if cols["created_at"] {
			parts = append(parts, prefix+"created_at")
		}
		return strings.Join(parts, ", ")
	}

	parts := []string{prefix + "id", prefix + "amount", prefix + "status"}
	for _, c := range []string{"user_id", "booking_id", "currency", "method", "external_ref", "created_at"} {
		if cols[c] {
			parts = append(parts, prefix+c)
		}
	}
	switch paymentRefColumn(cols) {
	case "booking_ref":
		parts = append(parts, prefix+"booking_ref")
	case "reference":
		parts = append(parts, prefix+"reference AS booking_ref")
	}
	return strings.Join(parts, ", ")
}

func paymentRowToEntity(row paymentRow, minimal bool) (*entities.Payment, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}

	p := &entities.Payment{ID: id, CreatedAt: row.CreatedAt}
	if row.UserID != "" {
		if uid, err := uuid.Parse(row.UserID); err == nil {
			p.UserID = &uid
		}
	}

	if minimal {
		var blob paymentBlob
		if err := json.Unmarshal([]byte(row.Data), &blob); err != nil {
			return nil, err
		}
		if blob.BookingID != "" {
			if bid, err := uuid.Parse(blob.BookingID); err == nil {
				p.BookingID = &bid
			}
		}
		p.BookingRef = blob.BookingRef
		p.Amount = blob.Amount
		p.Currency = blob.Currency
		p.Method = blob.Method
		p.Status = entities.PaymentStatus(blob.Status)
		if blob.ExternalRef != "" {
			p.ExternalRef = null.StringFrom(blob.ExternalRef)
		}
		return p, nil
	}

	if row.BookingID != "" {
		if bid, err := uuid.Parse(row.BookingID); err == nil {
			p.BookingID = &bid
		}
	}
	p.BookingRef = row.BookingRef
	p.Amount = row.Amount
	p.Currency = row.Currency
	p.Method = row.Method
	p.Status = entities.PaymentStatus(row.Status)
	p.ExternalRef = row.ExternalRef
	return p, nil
}

func (r *PaymentRepositoryImpl) query(ctx context.Context) (*gorm.DB, map[string]bool) {
	db := GetDB(ctx, r.db)
	cols := schema.Existing(ctx, db, paymentsTable, paymentColumnCandidates...)
	q := db.WithContext(ctx).Table(paymentsTable).Select(paymentSelectExpr(cols, ""))
	return q, cols
}

// GetByID retrieves a payment by ID
func (r *PaymentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	q, cols := r.query(ctx)

	var row paymentRow
	err := q.Where("id = ?", id.String()).Limit(1).Scan(&row).Error
	if err != nil {
		return nil, domainErrors.StorageUnavailable(err)
	}
	if row.ID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return paymentRowToEntity(row, !paymentStructured(cols))
}

// LatestByBooking returns the newest payment row linked to the booking.
// The newest row is authoritative: older rows for the same booking are
// superseded intents.
func (r *PaymentRepositoryImpl) LatestByBooking(ctx context.Context, bookingID uuid.UUID) (*entities.Payment, error) {
	q, cols := r.query(ctx)

	switch {
	case cols["booking_id"]:
		var row paymentRow
		err := q.Where("booking_id = ?", bookingID.String()).
			Order("created_at DESC").Limit(1).Scan(&row).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		if row.ID == "" {
			return nil, domainErrors.ErrNotFound
		}
		return paymentRowToEntity(row, false)

	case paymentRefColumn(cols) != "" && paymentStructured(cols):
		booking, err := r.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		var row paymentRow
		err = q.Where(paymentRefColumn(cols)+" = ?", booking.Reference).
			Order("created_at DESC").Limit(1).Scan(&row).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		if row.ID == "" {
			return nil, domainErrors.ErrNotFound
		}
		return paymentRowToEntity(row, false)

	default:
		booking, err := r.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		var rows []paymentRow
		if err := q.Order("created_at DESC").Limit(maxListRows).Scan(&rows).Error; err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		for _, row := range rows {
			p, convErr := paymentRowToEntity(row, true)
			if convErr != nil {
				continue
			}
			if (p.BookingID != nil && *p.BookingID == bookingID) ||
				(p.BookingRef != "" && p.BookingRef == booking.Reference) {
				return p, nil
			}
		}
		return nil, domainErrors.ErrNotFound
	}
}

// ListByUser resolves the user's payments through the first applicable
// correlation strategy: direct ownership column, membership in the user's
// booking reference set, then a reference join scoped by booking owner.
// A user with no resolvable payments gets an empty list, never an error.
func (r *PaymentRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Payment, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	q, cols := r.query(ctx)
	minimal := !paymentStructured(cols)

	var rows []paymentRow
	switch {
	case cols["user_id"]:
		err := q.Where("user_id = ?", userID.String()).
			Order("created_at DESC").Limit(limit).Scan(&rows).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}

	case paymentRefColumn(cols) != "":
		refCol := paymentRefColumn(cols)
		refs, err := r.bookings.ReferencesByUser(ctx, userID)
		if err == nil {
			if len(refs) == 0 {
				return []*entities.Payment{}, nil
			}
			err = q.Where(refCol+" IN ?", refs).
				Order("created_at DESC").Limit(limit).Scan(&rows).Error
			if err != nil {
				return nil, domainErrors.StorageUnavailable(err)
			}
			break
		}

		// Reference set unavailable; join the two tables on the shared
		// reference column instead, scoping by the booking owner.
		bookingRef := "reference"
		if schema.HasAll(ctx, GetDB(ctx, r.db), bookingsTable, "booking_ref") {
			bookingRef = "booking_ref"
		}
		if !schema.HasAll(ctx, GetDB(ctx, r.db), bookingsTable, bookingRef, "user_id") {
			logger.Warn(ctx, "no payment correlation strategy applies, returning empty list",
				zap.String("user_id", userID.String()))
			return []*entities.Payment{}, nil
		}
		joinErr := GetDB(ctx, r.db).WithContext(ctx).Table(paymentsTable).
			Select(paymentSelectExpr(cols, paymentsTable+".")).
			Joins("JOIN "+bookingsTable+" ON "+bookingsTable+"."+bookingRef+" = "+paymentsTable+"."+refCol).
			Where(bookingsTable+".user_id = ?", userID.String()).
			Order(paymentsTable + ".created_at DESC").Limit(limit).Scan(&rows).Error
		if joinErr != nil {
			return nil, domainErrors.StorageUnavailable(joinErr)
		}

	default:
		// Minimal layout without an owner column leaves nothing to
		// correlate on.
		logger.Warn(ctx, "no payment correlation strategy applies, returning empty list",
			zap.String("user_id", userID.String()))
		return []*entities.Payment{}, nil
	}

	payments := make([]*entities.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := paymentRowToEntity(row, minimal)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// Complete marks a pending intent completed and records the gateway
// confirmation reference.
func (r *PaymentRepositoryImpl) Complete(ctx context.Context, id uuid.UUID, externalRef string) error {
	db := GetDB(ctx, r.db)
	cols := schema.Existing(ctx, db, paymentsTable, paymentColumnCandidates...)

	if paymentStructured(cols) {
		updates := map[string]interface{}{"status": string(entities.PaymentStatusCompleted)}
		if cols["external_ref"] {
			updates["external_ref"] = externalRef
		}
		res := db.WithContext(ctx).Table(paymentsTable).Where("id = ?", id.String()).Updates(updates)
		if res.Error != nil {
			return domainErrors.StorageUnavailable(res.Error)
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	}

	return r.rewriteBlob(ctx, id, func(blob *paymentBlob) {
		blob.Status = string(entities.PaymentStatusCompleted)
		blob.ExternalRef = externalRef
	})
}

// UpdateStatus sets the payment status.
func (r *PaymentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	db := GetDB(ctx, r.db)
	cols := schema.Existing(ctx, db, paymentsTable, paymentColumnCandidates...)

	if paymentStructured(cols) {
		res := db.WithContext(ctx).Table(paymentsTable).
			Where("id = ?", id.String()).
			Update("status", string(status))
		if res.Error != nil {
			return domainErrors.StorageUnavailable(res.Error)
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	}

	return r.rewriteBlob(ctx, id, func(blob *paymentBlob) {
		blob.Status = string(status)
	})
}

// rewriteBlob mutates a minimal-layout row by reading, patching and writing
// back its envelope.
func (r *PaymentRepositoryImpl) rewriteBlob(ctx context.Context, id uuid.UUID, patch func(*paymentBlob)) error {
	db := GetDB(ctx, r.db)

	var data string
	err := db.WithContext(ctx).Table(paymentsTable).
		Select("data").Where("id = ?", id.String()).Limit(1).Scan(&data).Error
	if err != nil {
		return domainErrors.StorageUnavailable(err)
	}
	if data == "" {
		return domainErrors.ErrNotFound
	}

	var blob paymentBlob
	if err := json.Unmarshal([]byte(data), &blob); err != nil {
		return err
	}
	patch(&blob)

	raw, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Table(paymentsTable).
		Where("id = ?", id.String()).
		Update("data", string(raw))
	if res.Error != nil {
		return domainErrors.StorageUnavailable(res.Error)
	}
	return nil
}
