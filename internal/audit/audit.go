package audit

import (
	"context"

	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Recorder persists booking lifecycle events consumed from the events
// topic into an append-only trail.
type Recorder struct {
	db *pgxpool.Pool
}

func NewRecorder(db *pgxpool.Pool) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, event kafka.BookingEvent) error {
	_, err := r.db.Exec(ctx, `INSERT INTO booking_events (event_type, booking_id, car_id, renter_id, owner_id, status, pickup, return_at, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.Type, event.BookingID, event.CarID, event.RenterID, event.OwnerID, event.Status, event.Pickup, event.ReturnAt, event.PriceCents)
	return err
}
