package domain

import (
	"time"

	"github.com/google/uuid"
)

// Car is a listed vehicle. OwnerID becomes nil when the owner removes
// the listing: cars are never physically deleted because bookings keep
// referencing them. IsAvailable is the owner-controlled visibility
// flag and is orthogonal to booking-interval availability.
type Car struct {
	ID           uuid.UUID  `json:"_id"`
	OwnerID      *uuid.UUID `json:"owner"`
	Make         string     `json:"brand"`
	Model        string     `json:"model"`
	Category     string     `json:"category"`
	Transmission string     `json:"transmission"`
	Seats        int        `json:"seating_capacity"`
	FuelType     string     `json:"fuel_type"`
	DayRateCents int64      `json:"pricePerDay"`
	Location     string     `json:"location"`
	IsAvailable  bool       `json:"isAvailable"`
	ImageURL     string     `json:"image"`
	CreatedAt    time.Time  `json:"createdAt"`
}
