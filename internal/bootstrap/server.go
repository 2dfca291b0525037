package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/cars"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, tokens *auth.TokenManager, userSvc users.UserUseCase, carSvc cars.CarUseCase, bookingSvc booking.BookingUseCase) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, tokens, userSvc, carSvc, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, tokens *auth.TokenManager, userSvc users.UserUseCase, carSvc cars.CarUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.Default()

	authed := auth.Middleware(tokens, userSvc.ResolveIdentity)

	userHandler := api.NewUserHandler(userSvc, carSvc)
	ownerHandler := api.NewOwnerHandler(userSvc, carSvc, bookingSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, carSvc)

	userPublic := router.Group("/api/user")
	userAuthed := router.Group("/api/user", authed)
	userHandler.Register(userPublic, userAuthed)

	ownerHandler.Register(router.Group("/api/owner", authed))

	bookingPublic := router.Group("/api/bookings")
	bookingAuthed := router.Group("/api/bookings", authed)
	bookingHandler.Register(bookingPublic, bookingAuthed)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/carrental.swagger.json"),
		)))
	}

	return router
}
