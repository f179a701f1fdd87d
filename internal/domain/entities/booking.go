package entities

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType represents the kind of service a booking covers
type ServiceType string

const (
	ServiceTypeFlight     ServiceType = "flight"
	ServiceTypeHotel      ServiceType = "hotel"
	ServiceTypeRestaurant ServiceType = "restaurant"
)

// Booking is the logical, schema-independent view of one purchased service.
// The physical row may live in either the modern or the legacy column layout;
// repositories normalize both into this shape.
type Booking struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Type      ServiceType `json:"type"`
	Reference string      `json:"reference"`
	Data      Document    `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	Type      ServiceType `json:"type" binding:"required"`
	Reference string      `json:"reference"`
	Data      Document    `json:"data"`
}

// Valid reports whether the service type is one of the supported kinds.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeFlight, ServiceTypeHotel, ServiceTypeRestaurant:
		return true
	}
	return false
}
