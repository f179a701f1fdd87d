package models

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Destination   string    `gorm:"type:varchar(255);not null"`
	Days          int       `gorm:"not null"`
	Budget        string    `gorm:"type:varchar(20)"`
	Currency      string    `gorm:"type:varchar(10)"`
	TotalCost     float64
	StartDate     *time.Time
	EndDate       *time.Time
	Travelers     *int
	ItineraryJSON string `gorm:"column:itinerary_json;type:text;not null;default:'[]'"`
	ImagesJSON    string `gorm:"column:images_json;type:text;not null;default:'[]'"`
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (Trip) TableName() string {
	return "trips"
}

type ChecklistItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	BookingID       *string   `gorm:"type:uuid;index"`
	TripID          *string   `gorm:"type:uuid;index"`
	ItemName        string    `gorm:"type:varchar(255);not null"`
	Category        string    `gorm:"type:varchar(100)"`
	IsPacked        bool      `gorm:"not null;default:false"`
	IsAutoGenerated bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}
