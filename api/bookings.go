package api

import (
	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/cars"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings booking.BookingUseCase
	cars     cars.CarUseCase
}

type checkAvailabilityRequest struct {
	Location   string `json:"location"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
}

type createBookingRequest struct {
	CarID      string `json:"carId"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
}

type changeStatusRequest struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

func NewBookingHandler(bookingsSvc booking.BookingUseCase, carsSvc cars.CarUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookingsSvc, cars: carsSvc}
}

func (h *BookingHandler) Register(public, authed *gin.RouterGroup) {
	public.POST("/check-availability", h.checkAvailability)
	authed.POST("/create", h.create)
	authed.POST("/change-status", h.changeStatus)
	authed.GET("/user", h.listForRenter)
	authed.GET("/owner", h.listForOwner)
}

// checkAvailability is the candidate search over a location and date
// range. Without both dates the client falls back to the plain car
// list endpoint; this handler always requires them.
func (h *BookingHandler) checkAvailability(c *gin.Context) {
	var req checkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		failBadRequest(c, "invalid pickup date")
		return
	}
	returnAt, err := parseDate(req.ReturnDate)
	if err != nil {
		failBadRequest(c, "invalid return date")
		return
	}

	available, err := h.cars.FindAvailable(c.Request.Context(), req.Location, pickup, returnAt)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"availableCars": available})
}

func (h *BookingHandler) create(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		failBadRequest(c, "invalid car id")
		return
	}
	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		failBadRequest(c, "invalid pickup date")
		return
	}
	returnAt, err := parseDate(req.ReturnDate)
	if err != nil {
		failBadRequest(c, "invalid return date")
		return
	}

	created, err := h.bookings.Create(c.Request.Context(), identity, booking.CreateBookingInput{
		CarID:    carID,
		Pickup:   pickup,
		ReturnAt: returnAt,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "booking created", "booking": created})
}

func (h *BookingHandler) changeStatus(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		failBadRequest(c, "invalid booking id")
		return
	}

	updated, err := h.bookings.ChangeStatus(c.Request.Context(), identity, bookingID, domain.BookingStatus(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "status updated", "booking": updated})
}

func (h *BookingHandler) listForRenter(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	bookings, err := h.bookings.ListForRenter(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"bookings": bookings})
}

func (h *BookingHandler) listForOwner(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	bookings, err := h.bookings.ListForOwner(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"bookings": bookings})
}
