package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultCurrency is applied when a payment carries no explicit currency.
const DefaultCurrency = "INR"

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "pending"
	PaymentStatusCompleted       PaymentStatus = "completed"
	PaymentStatusReceiptUploaded PaymentStatus = "receipt_uploaded"
)

// Payment is the logical view of a monetary transaction. BookingID links the
// modern schema; BookingRef carries the legacy reference-string link when the
// row predates the booking_id column.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	BookingID   *uuid.UUID    `json:"booking_id,omitempty"`
	BookingRef  string        `json:"booking_ref,omitempty"`
	UserID      *uuid.UUID    `json:"user_id,omitempty"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Method      string        `json:"method"`
	Status      PaymentStatus `json:"status"`
	ExternalRef null.String   `json:"external_ref,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreatePaymentInput represents input for creating a payment intent
type CreatePaymentInput struct {
	BookingID  string  `json:"booking_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method" binding:"required"`
	Credential string  `json:"credential"`
}

// CompletePaymentInput carries the gateway confirmation for a pending intent
type CompletePaymentInput struct {
	ExternalRef string `json:"external_ref" binding:"required"`
}

// Receipt is one uploaded evidence file for a payment; append-only.
type Receipt struct {
	ID         uuid.UUID `json:"id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	UserID     uuid.UUID `json:"user_id"`
	ReceiptURL string    `json:"receipt_url"`
	CreatedAt  time.Time `json:"created_at"`
}
