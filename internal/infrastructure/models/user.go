package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(255)"`
	Phone          string    `gorm:"type:varchar(50)"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:'user'"`
	IsKYCCompleted bool      `gorm:"column:is_kyc_completed;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
