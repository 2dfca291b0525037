package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	ListVisible(ctx context.Context) ([]domain.Car, error)
	Search(ctx context.Context, query string) ([]domain.Car, error)
	FindAvailable(ctx context.Context, location string, pickup, returnAt time.Time) ([]domain.Car, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Car, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	ToggleAvailability(ctx context.Context, id, ownerID uuid.UUID) (*domain.Car, error)
	SoftDelete(ctx context.Context, id, ownerID uuid.UUID) error
}

type PGCarRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) CarRepository {
	return &PGCarRepository{db: db}
}

const carColumns = `id, owner_id, make, model, category, transmission, seats, fuel_type, day_rate_cents, location, is_available, image_url, created_at`

func (r *PGCarRepository) Create(ctx context.Context, car *domain.Car) error {
	if err := r.db.QueryRow(ctx, `INSERT INTO cars (id, owner_id, make, model, category, transmission, seats, fuel_type, day_rate_cents, location, is_available, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		car.ID, car.OwnerID, car.Make, car.Model, car.Category, car.Transmission, car.Seats, car.FuelType, car.DayRateCents, car.Location, car.IsAvailable, car.ImageURL).
		Scan(&car.CreatedAt); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PGCarRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	row := r.db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id=$1`, id)
	var c domain.Car
	if err := scanCar(row, &c); err != nil {
		return nil, storeErr(err)
	}
	return &c, nil
}

func (r *PGCarRepository) ListVisible(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars WHERE is_available = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectCars(rows)
}

// Search is the free-text browse filter: case-insensitive substring
// over make, model, category and transmission. It is a different
// operation from the location-scoped availability search and shares
// no matching semantics with it.
func (r *PGCarRepository) Search(ctx context.Context, query string) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars
		WHERE is_available = TRUE
		  AND (make ILIKE '%' || $1 || '%'
		   OR model ILIKE '%' || $1 || '%'
		   OR category ILIKE '%' || $1 || '%'
		   OR transmission ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC`, query)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectCars(rows)
}

// FindAvailable returns visible cars with no active booking whose
// half-open interval overlaps [pickup, returnAt). Location, when
// given, is a case-sensitive exact match.
func (r *PGCarRepository) FindAvailable(ctx context.Context, location string, pickup, returnAt time.Time) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars c
		WHERE c.is_available = TRUE
		  AND ($1 = '' OR c.location = $1)
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.car_id = c.id
			  AND b.status IN ('pending', 'confirmed')
			  AND b.pickup < $3 AND $2 < b.return_at
		  )
		ORDER BY c.id`, location, pickup, returnAt)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectCars(rows)
}

func (r *PGCarRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return collectCars(rows)
}

func (r *PGCarRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars WHERE owner_id=$1`, ownerID).Scan(&count); err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *PGCarRepository) ToggleAvailability(ctx context.Context, id, ownerID uuid.UUID) (*domain.Car, error) {
	row := r.db.QueryRow(ctx, `UPDATE cars SET is_available = NOT is_available
		WHERE id=$1 AND owner_id=$2
		RETURNING `+carColumns, id, ownerID)
	var c domain.Car
	if err := scanCar(row, &c); err != nil {
		return nil, storeErr(err)
	}
	return &c, nil
}

// SoftDelete clears the owner reference and hides the listing. The
// row stays because bookings keep pointing at it.
func (r *PGCarRepository) SoftDelete(ctx context.Context, id, ownerID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `UPDATE cars SET owner_id = NULL, is_available = FALSE WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCar(row rowScanner, c *domain.Car) error {
	return row.Scan(&c.ID, &c.OwnerID, &c.Make, &c.Model, &c.Category, &c.Transmission, &c.Seats, &c.FuelType, &c.DayRateCents, &c.Location, &c.IsAvailable, &c.ImageURL, &c.CreatedAt)
}

func collectCars(rows pgx.Rows) ([]domain.Car, error) {
	defer rows.Close()
	cars := make([]domain.Car, 0)
	for rows.Next() {
		var c domain.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, storeErr(err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return cars, nil
}

var _ CarRepository = (*PGCarRepository)(nil)
