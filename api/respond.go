package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/gin-gonic/gin"
)

// Every response carries a success flag; failures add a
// human-readable message. Unexpected faults never escape the API
// boundary: gin's recovery middleware plus this mapping turn them
// into a generic failure response.
func ok(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail keeps infrastructure detail out of the response body: store
// failures and anything unclassified get a generic message with the
// cause in the server log only.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "service temporarily unavailable, try again later"
	case status == http.StatusInternalServerError:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "something went wrong"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func failBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates, the
// two shapes the web client sends.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
