package cars

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

type CarUseCase interface {
	List(ctx context.Context) ([]domain.Car, error)
	Search(ctx context.Context, query string) ([]domain.Car, error)
	FindAvailable(ctx context.Context, location string, pickup, returnAt time.Time) ([]domain.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Add(ctx context.Context, identity domain.Identity, input AddCarInput) (*domain.Car, error)
	ListForOwner(ctx context.Context, identity domain.Identity) ([]domain.Car, error)
	ToggleAvailability(ctx context.Context, identity domain.Identity, carID uuid.UUID) (*domain.Car, error)
	Delete(ctx context.Context, identity domain.Identity, carID uuid.UUID) error
}

type Cache interface {
	GetCars(ctx context.Context) ([]domain.Car, error)
	SetCars(ctx context.Context, cars []domain.Car) error
	InvalidateCars(ctx context.Context) error
}

type AddCarInput struct {
	Make         string `json:"brand"`
	Model        string `json:"model"`
	Category     string `json:"category"`
	Transmission string `json:"transmission"`
	Seats        int    `json:"seating_capacity"`
	FuelType     string `json:"fuel_type"`
	DayRateCents int64  `json:"pricePerDay"`
	Location     string `json:"location"`
	ImageURL     string `json:"image"`
}

type CarService struct {
	cars  repository.CarRepository
	cache Cache
}

func NewCarService(cars repository.CarRepository, cache Cache) *CarService {
	return &CarService{cars: cars, cache: cache}
}

func (s *CarService) List(ctx context.Context) ([]domain.Car, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCars(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	cars, err := s.cars.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetCars(ctx, cars)
	}
	return cars, nil
}

// Search is the free-text browse filter: substring, case-insensitive.
// Not to be confused with FindAvailable's exact location match.
func (s *CarService) Search(ctx context.Context, query string) ([]domain.Car, error) {
	if query == "" {
		return s.List(ctx)
	}
	return s.cars.Search(ctx, query)
}

// FindAvailable answers the availability query: visible cars at the
// given location with no active booking overlapping [pickup,
// returnAt). Past pickups are not rejected here; createBooking does
// that. An empty result is a valid answer, not an error.
func (s *CarService) FindAvailable(ctx context.Context, location string, pickup, returnAt time.Time) ([]domain.Car, error) {
	if pickup.IsZero() || returnAt.IsZero() {
		return nil, fmt.Errorf("%w: pickup and return dates are required", domain.ErrValidation)
	}
	if !pickup.Before(returnAt) {
		return nil, fmt.Errorf("%w: return date must be after pickup date", domain.ErrValidation)
	}
	return s.cars.FindAvailable(ctx, location, pickup, returnAt)
}

func (s *CarService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return s.cars.GetByID(ctx, id)
}

func (s *CarService) Add(ctx context.Context, identity domain.Identity, input AddCarInput) (*domain.Car, error) {
	if identity.Role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: only owners can list cars", domain.ErrUnauthorized)
	}
	if input.Make == "" || input.Model == "" || input.Location == "" {
		return nil, fmt.Errorf("%w: brand, model and location are required", domain.ErrValidation)
	}
	if input.DayRateCents <= 0 {
		return nil, fmt.Errorf("%w: per-day rate must be positive", domain.ErrValidation)
	}

	ownerID := identity.ID
	car := &domain.Car{
		ID:           uuid.New(),
		OwnerID:      &ownerID,
		Make:         input.Make,
		Model:        input.Model,
		Category:     input.Category,
		Transmission: input.Transmission,
		Seats:        input.Seats,
		FuelType:     input.FuelType,
		DayRateCents: input.DayRateCents,
		Location:     input.Location,
		IsAvailable:  true,
		ImageURL:     input.ImageURL,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return car, nil
}

func (s *CarService) ListForOwner(ctx context.Context, identity domain.Identity) ([]domain.Car, error) {
	return s.cars.ListByOwner(ctx, identity.ID)
}

func (s *CarService) ToggleAvailability(ctx context.Context, identity domain.Identity, carID uuid.UUID) (*domain.Car, error) {
	car, err := s.cars.ToggleAvailability(ctx, carID, identity.ID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return car, nil
}

// Delete unlists the car without removing the row: the owner
// reference is cleared and the car hidden, while existing bookings
// keep their reference and their owner snapshot.
func (s *CarService) Delete(ctx context.Context, identity domain.Identity, carID uuid.UUID) error {
	if err := s.cars.SoftDelete(ctx, carID, identity.ID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CarService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateCars(ctx)
	}
}

var _ CarUseCase = (*CarService)(nil)
