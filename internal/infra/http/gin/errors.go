package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingapp "villamare/internal/app/handlers/booking"
	domainavailability "villamare/internal/domain/availability"
	domainbooking "villamare/internal/domain/booking"
	domainpricing "villamare/internal/domain/pricing"
	domainrange "villamare/internal/domain/shared/daterange"
)

// writeError translates the core's typed errors into HTTP responses. A
// channel failure maps to 502, never to an available-looking 200.
func writeError(c *gin.Context, err error) {
	var validationErr *bookingapp.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields", "fields": validationErr.Fields})
		return
	}

	var minStayErr *domainpricing.MinimumStayError
	if errors.As(err, &minStayErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "stay too short", "minimum_nights": minStayErr.MinimumNights})
		return
	}

	var integrationErr *domainavailability.IntegrationError
	if errors.As(err, &integrationErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "channel unavailable", "source": integrationErr.Source})
		return
	}

	switch {
	case errors.Is(err, domainbooking.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "dates already booked"})
	case errors.Is(err, domainbooking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking request not found"})
	case errors.Is(err, domainbooking.ErrInvalidStatus),
		errors.Is(err, domainbooking.ErrInvalidGuests),
		errors.Is(err, domainbooking.ErrContactMissing),
		errors.Is(err, domainrange.ErrInvalidRange),
		errors.Is(err, domainpricing.ErrInvalidStay):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
