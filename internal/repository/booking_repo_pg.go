package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create runs the whole check-and-reserve critical section and
	// returns domain.ErrConflict when the interval is already taken.
	Create(ctx context.Context, carID, renterID uuid.UUID, pickup, returnAt time.Time) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// UpdateStatus moves a pending booking to the given status and
	// returns domain.ErrConflict when the booking is no longer pending,
	// so two concurrent transitions cannot both land.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, car_id, renter_id, owner_id, pickup, return_at, price_cents, status, created_at`

// Create re-checks the overlap and inserts the booking in one
// transaction. The SELECT ... FOR UPDATE on the car row serializes
// concurrent creates for the same car across any number of server
// processes, so two requests for overlapping intervals cannot both
// pass the check; the second one blocks, re-reads and gets
// ErrConflict. The price and the owner snapshot are taken from the
// locked row inside the same transaction.
func (r *PGBookingRepository) Create(ctx context.Context, carID, renterID uuid.UUID, pickup, returnAt time.Time) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback(ctx)

	var (
		ownerID      *uuid.UUID
		dayRateCents int64
		isAvailable  bool
	)
	if err := tx.QueryRow(ctx, `SELECT owner_id, day_rate_cents, is_available FROM cars WHERE id=$1 FOR UPDATE`, carID).
		Scan(&ownerID, &dayRateCents, &isAvailable); err != nil {
		return nil, storeErr(err)
	}
	if ownerID == nil || !isAvailable {
		return nil, domain.ErrNotFound
	}

	var overlaps bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE car_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND pickup < $3 AND $2 < return_at
		)`, carID, pickup, returnAt).Scan(&overlaps); err != nil {
		return nil, storeErr(err)
	}
	if overlaps {
		return nil, domain.ErrConflict
	}

	booking := &domain.Booking{
		ID:         uuid.New(),
		CarID:      carID,
		RenterID:   renterID,
		OwnerID:    *ownerID,
		Pickup:     pickup,
		ReturnAt:   returnAt,
		PriceCents: domain.RentalPriceCents(dayRateCents, pickup, returnAt),
		Status:     domain.BookingStatusPending,
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, car_id, renter_id, owner_id, pickup, return_at, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		booking.ID, booking.CarID, booking.RenterID, booking.OwnerID, booking.Pickup, booking.ReturnAt, booking.PriceCents, booking.Status).
		Scan(&booking.CreatedAt); err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr(err)
	}
	return booking, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, storeErr(err)
	}
	return &b, nil
}

// UpdateStatus guards the write with the pending predicate. A booking
// already moved by a concurrent request matches zero rows and the
// second write reports ErrConflict instead of re-transitioning a
// terminal booking.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND status='pending' RETURNING `+bookingColumns, status, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConflict
		}
		return nil, storeErr(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE renter_id=$1 ORDER BY created_at DESC`, renterID)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectBookings(rows)
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.CarID, &b.RenterID, &b.OwnerID, &b.Pickup, &b.ReturnAt, &b.PriceCents, &b.Status, &b.CreatedAt)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, storeErr(err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return bookings, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
