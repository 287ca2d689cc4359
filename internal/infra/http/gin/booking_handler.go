package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	bookingapp "stayable/internal/app/handlers/booking"
)

type BookingHandler struct {
	Bus bus.Bus
}

type validateStayRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

// Validate runs the form-level check on a booking form. Field problems
// are part of the response body, not an HTTP error: the UI renders
// every failed field at once.
func (h BookingHandler) Validate(c *gin.Context) {
	propertyID := c.Param("id")
	var req validateStayRequest
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

	query := bookingapp.ValidateStayQuery{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
	}
	result, err := bus.Send[bookingapp.ValidateStayQuery, dto.StayValidation](c.Request.Context(), h.Bus, query)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !result.OK {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

var _ BookingHTTP = BookingHandler{}
