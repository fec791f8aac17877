package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"villamare/internal/app/dto"
	pricingapp "villamare/internal/app/handlers/pricing"
	"villamare/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

type quoteRequest struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Adults   int       `json:"adults"`
	Children int       `json:"children"`
	Pet      bool      `json:"pet"`
}

func (h PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := queries.Ask[pricingapp.QuoteQuery, dto.PriceBreakdown](c.Request.Context(), h.Queries, pricingapp.QuoteQuery{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Adults:   req.Adults,
		Children: req.Children,
		Pet:      req.Pet,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
