package api

import (
	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/service/cars"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users users.UserUseCase
	cars  cars.CarUseCase
}

func NewUserHandler(usersSvc users.UserUseCase, carsSvc cars.CarUseCase) *UserHandler {
	return &UserHandler{users: usersSvc, cars: carsSvc}
}

func (h *UserHandler) Register(public, authed *gin.RouterGroup) {
	public.POST("/register", h.register)
	public.POST("/login", h.login)
	public.GET("/cars", h.listCars)
	public.GET("/cars/search", h.searchCars)
	authed.GET("/data", h.data)
}

func (h *UserHandler) register(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	token, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (h *UserHandler) login(c *gin.Context) {
	var req users.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, "invalid request body")
		return
	}

	token, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (h *UserHandler) data(c *gin.Context) {
	identity, found := auth.IdentityFrom(c)
	if !found {
		failBadRequest(c, "missing identity")
		return
	}

	user, err := h.users.Get(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"user": user})
}

func (h *UserHandler) listCars(c *gin.Context) {
	cars, err := h.cars.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"cars": cars})
}

func (h *UserHandler) searchCars(c *gin.Context) {
	cars, err := h.cars.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"cars": cars})
}
