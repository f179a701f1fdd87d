package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCDetail struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName           string    `gorm:"type:varchar(255);not null"`
	DateOfBirth        string    `gorm:"type:varchar(20)"`
	Nationality        string    `gorm:"type:varchar(100)"`
	DocumentType       string    `gorm:"type:varchar(50)"`
	DocumentNumber     string    `gorm:"type:varchar(100)"`
	DocFrontPath       *string   `gorm:"type:varchar(500)"`
	DocBackPath        *string   `gorm:"type:varchar(500)"`
	SelfiePath         *string   `gorm:"type:varchar(500)"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	SubmittedAt        time.Time `gorm:"index"`
	VerifiedAt         *time.Time
}

func (KYCDetail) TableName() string {
	return "kyc_details"
}

type KYCUpload struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind       string    `gorm:"type:varchar(50)"`
	Path       string    `gorm:"type:varchar(500);not null"`
	UploadedAt time.Time
}

func (KYCUpload) TableName() string {
	return "kyc_uploads"
}
