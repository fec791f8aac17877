package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"villamare/internal/app/dto"
	availabilityapp "villamare/internal/app/handlers/availability"
	"villamare/internal/app/queries"
)

const queryDateLayout = "2006-01-02"

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, availabilityapp.GetCalendarQuery{
		From: from,
		To:   to,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	result, err := queries.Ask[availabilityapp.CheckAvailabilityQuery, availabilityapp.CheckAvailabilityResult](c.Request.Context(), h.Queries, availabilityapp.CheckAvailabilityQuery{
		CheckIn:  from,
		CheckOut: to,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	from, err = time.ParseInLocation(queryDateLayout, c.Query("from"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err = time.ParseInLocation(queryDateLayout, c.Query("to"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

var _ AvailabilityHTTP = AvailabilityHandler{}
