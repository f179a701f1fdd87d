package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Trip is a planned journey owned by one user. The itinerary and image
// list are opaque JSON documents supplied by the trip planner frontend.
type Trip struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Destination string      `json:"destination"`
	Days        int         `json:"days"`
	Budget      string      `json:"budget"`
	Currency    string      `json:"currency"`
	TotalCost   float64     `json:"total_cost"`
	StartDate   null.Time   `json:"start_date,omitempty"`
	EndDate     null.Time   `json:"end_date,omitempty"`
	Travelers   null.Int    `json:"travelers,omitempty"`
	Itinerary   Document    `json:"itinerary"`
	Images      Document    `json:"images"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   null.Time   `json:"updated_at,omitempty"`
}

// CreateTripInput represents input for creating a trip
type CreateTripInput struct {
	Destination string     `json:"destination" binding:"required"`
	Days        int        `json:"days" binding:"required,gt=0"`
	Budget      string     `json:"budget"`
	Currency    string     `json:"currency"`
	TotalCost   float64    `json:"total_cost"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Travelers   *int       `json:"travelers"`
	Itinerary   Document   `json:"itinerary"`
}

// UpdateTripInput carries a partial trip update; nil fields are untouched.
type UpdateTripInput struct {
	Destination *string    `json:"destination"`
	Days        *int       `json:"days"`
	Budget      *string    `json:"budget"`
	Currency    *string    `json:"currency"`
	TotalCost   *float64   `json:"total_cost"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Travelers   *int       `json:"travelers"`
	Itinerary   *Document  `json:"itinerary"`
	Images      *Document  `json:"images"`
}

// ChecklistItem is one packing-list entry, tied to a trip or a booking.
// Auto-generated items come from the destination packing templates; the
// rest are user-added.
type ChecklistItem struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	BookingID       null.String `json:"booking_id,omitempty"`
	TripID          null.String `json:"trip_id,omitempty"`
	ItemName        string      `json:"item_name"`
	Category        string      `json:"category,omitempty"`
	IsPacked        bool        `json:"is_packed"`
	IsAutoGenerated bool        `json:"is_auto_generated"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CreateChecklistItemInput represents input for a user-added item
type CreateChecklistItemInput struct {
	BookingID string `json:"booking_id"`
	TripID    string `json:"trip_id"`
	ItemName  string `json:"item_name" binding:"required"`
	Category  string `json:"category"`
}
