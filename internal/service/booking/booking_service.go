package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Create(ctx context.Context, identity domain.Identity, input CreateBookingInput) (*domain.Booking, error)
	ChangeStatus(ctx context.Context, identity domain.Identity, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	ListForRenter(ctx context.Context, identity domain.Identity) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, identity domain.Identity) ([]domain.Booking, error)
	Dashboard(ctx context.Context, identity domain.Identity) (*Dashboard, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	CarID    uuid.UUID
	Pickup   time.Time
	ReturnAt time.Time
}

// Dashboard is recomputed from the store on every request; nothing is
// cached or incrementally maintained.
type Dashboard struct {
	TotalCars         int              `json:"totalCars"`
	TotalBookings     int              `json:"totalBookings"`
	PendingBookings   int              `json:"pendingBookings"`
	CompletedBookings int              `json:"completedBookings"`
	RecentBookings    []domain.Booking `json:"recentBookings"`
	RevenueCents      int64            `json:"monthlyRevenue"`
}

type BookingService struct {
	bookings    repository.BookingRepository
	cars        repository.CarRepository
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type BookingServiceOption func(*BookingService)

// WithClock overrides the submission-time source used by validation.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	cars repository.CarRepository,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		cars:        cars,
		producer:    producer,
		eventsTopic: eventsTopic,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create validates the interval, then hands the check-and-reserve to
// the repository, which re-checks the overlap and inserts inside one
// transaction. Two concurrent submissions of the same interval yield
// exactly one booking and one ErrConflict; the conflicting caller
// must re-query availability and resubmit, never an automatic retry.
func (s *BookingService) Create(ctx context.Context, identity domain.Identity, input CreateBookingInput) (*domain.Booking, error) {
	if input.Pickup.IsZero() || input.ReturnAt.IsZero() {
		return nil, fmt.Errorf("%w: pickup and return dates are required", domain.ErrValidation)
	}
	if !input.Pickup.Before(input.ReturnAt) {
		return nil, fmt.Errorf("%w: return date must be after pickup date", domain.ErrValidation)
	}
	if input.Pickup.Before(s.now()) {
		return nil, fmt.Errorf("%w: pickup date must be in the future", domain.ErrValidation)
	}

	booking, err := s.bookings.Create(ctx, input.CarID, identity.ID, input.Pickup, input.ReturnAt)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// ChangeStatus lets the booking's recorded owner move a pending
// booking to confirmed or cancelled. The authorization check uses the
// owner snapshot taken at booking time, not the car's current owner.
func (s *BookingService) ChangeStatus(ctx context.Context, identity domain.Identity, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != identity.ID {
		return nil, fmt.Errorf("%w: only the booking's owner can change its status", domain.ErrUnauthorized)
	}
	if !current.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot change a %s booking to %s", domain.ErrValidation, current.Status, status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_"+string(status), updated)
	return updated, nil
}

func (s *BookingService) ListForRenter(ctx context.Context, identity domain.Identity) ([]domain.Booking, error) {
	return s.bookings.ListByRenter(ctx, identity.ID)
}

func (s *BookingService) ListForOwner(ctx context.Context, identity domain.Identity) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, identity.ID)
}

// Dashboard aggregates the owner's listings and bookings. An owner
// with no cars or bookings gets all-zero aggregates, not an error.
// Revenue counts confirmed bookings only, so cancelling a confirmed
// booking removes it from the sum on the next computation.
func (s *BookingService) Dashboard(ctx context.Context, identity domain.Identity) (*Dashboard, error) {
	if identity.Role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: owners only", domain.ErrUnauthorized)
	}

	totalCars, err := s.cars.CountByOwner(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		TotalCars:      totalCars,
		TotalBookings:  len(bookings),
		RecentBookings: bookings,
	}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingStatusPending:
			dashboard.PendingBookings++
		case domain.BookingStatusConfirmed:
			dashboard.CompletedBookings++
			dashboard.RevenueCents += b.PriceCents
		}
	}
	if len(dashboard.RecentBookings) > 3 {
		dashboard.RecentBookings = dashboard.RecentBookings[:3]
	}
	return dashboard, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		CarID:      booking.CarID.String(),
		RenterID:   booking.RenterID.String(),
		OwnerID:    booking.OwnerID.String(),
		Status:     string(booking.Status),
		Pickup:     booking.Pickup,
		ReturnAt:   booking.ReturnAt,
		PriceCents: booking.PriceCents,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID.String(), event); err != nil {
		log.Printf("failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
