package models

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiptURL string    `gorm:"type:varchar(500);not null"`
	CreatedAt  time.Time
}
