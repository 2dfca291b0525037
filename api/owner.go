package api

import (
	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/cars"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OwnerHandler struct {
	users    users.UserUseCase
	cars     cars.CarUseCase
	bookings booking.BookingUseCase
}

func NewOwnerHandler(usersSvc users.UserUseCase, carsSvc cars.CarUseCase, bookingsSvc booking.BookingUseCase) *OwnerHandler {
	return &OwnerHandler{users: usersSvc, cars: carsSvc, bookings: bookingsSvc}
}

func (h *OwnerHandler) Register(router *gin.RouterGroup) {
	router.POST("/change-role", h.changeRole)
	router.POST("/update-image", h.updateImage)

	owner := router.Group("", auth.RequireOwner())
	owner.POST("/add-car", h.addCar)
	owner.GET("/cars", h.listCars)
	owner.POST("/toggle-car", h.toggleCar)
	owner.POST("/delete-car", h.deleteCar)
	owner.GET("/dashboard", h.dashboard)
}

func (h *OwnerHandler) changeRole(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	user, token, err := h.users.BecomeOwner(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "now you can list cars", "token": token, "user": user})
}

func (h *OwnerHandler) updateImage(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	if err := h.users.UpdateImage(c.Request.Context(), identity, req.Image); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "image updated successfully"})
}

func (h *OwnerHandler) addCar(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	var req cars.AddCarInput
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	car, err := h.cars.Add(c.Request.Context(), identity, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "car added successfully", "car": car})
}

func (h *OwnerHandler) listCars(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	cars, err := h.cars.ListForOwner(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"cars": cars})
}

func (h *OwnerHandler) toggleCar(c *gin.Context) {
	identity, carID, bound := h.identityAndCarID(c)
	if !bound {
		return
	}

	car, err := h.cars.ToggleAvailability(c.Request.Context(), identity, carID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "car availability toggled successfully", "car": car})
}

func (h *OwnerHandler) deleteCar(c *gin.Context) {
	identity, carID, bound := h.identityAndCarID(c)
	if !bound {
		return
	}

	if err := h.cars.Delete(c.Request.Context(), identity, carID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "car deleted successfully"})
}

func (h *OwnerHandler) dashboard(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	dashboard, err := h.bookings.Dashboard(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"dashboardData": dashboard})
}

func (h *OwnerHandler) identityAndCarID(c *gin.Context) (domain.Identity, uuid.UUID, bool) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return domain.Identity{}, uuid.Nil, false
	}

	var req struct {
		CarID string `json:"carId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return domain.Identity{}, uuid.Nil, false
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		failBadRequest(c, "invalid car id")
		return domain.Identity{}, uuid.Nil, false
	}
	return identity, carID, true
}
