package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsActive reports whether a booking in this status blocks its interval
// from being booked again.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking holds a rental of one car over a half-open interval
// [Pickup, ReturnAt). OwnerID is copied from the car at creation time
// and never re-derived, so status-change authorization keeps working
// after the car is reassigned or soft-deleted. PriceCents is likewise
// fixed at creation.
type Booking struct {
	ID         uuid.UUID     `json:"_id"`
	CarID      uuid.UUID     `json:"car"`
	RenterID   uuid.UUID     `json:"user"`
	OwnerID    uuid.UUID     `json:"owner"`
	Pickup     time.Time     `json:"pickupDate"`
	ReturnAt   time.Time     `json:"returnDate"`
	PriceCents int64         `json:"price"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// CanTransitionTo permits pending -> confirmed and pending -> cancelled
// only. Re-opening a confirmed or cancelled booking is rejected.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != BookingStatusPending {
		return false
	}
	return next == BookingStatusConfirmed || next == BookingStatusCancelled
}
