package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	pricingapp "stayable/internal/app/handlers/pricing"
)

type QuoteHandler struct {
	Bus bus.Bus
}

type quoteRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

func (h QuoteHandler) Quote(c *gin.Context) {
	propertyID := c.Param("id")
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := dto.ParseDay(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := dto.ParseDay(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}

	query := pricingapp.QuoteStayQuery{PropertyID: propertyID, CheckIn: checkIn, CheckOut: checkOut}
	result, err := bus.Send[pricingapp.QuoteStayQuery, dto.Quote](c.Request.Context(), h.Bus, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
