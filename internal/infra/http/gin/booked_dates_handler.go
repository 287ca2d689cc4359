package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	availabilityapp "stayable/internal/app/handlers/availability"
)

// BookedDatesHandler is the ingest surface for the bookings
// collaborator: confirmed stays arrive here as lists of taken dates.
type BookedDatesHandler struct {
	Bus bus.Bus
}

type markBookedRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

func (h BookedDatesHandler) Mark(c *gin.Context) {
	var req markBookedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := dto.ParseDay(raw)
		if err != nil || d.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + raw})
			return
		}
		dates = append(dates, d)
	}

	cmd := availabilityapp.MarkBookedCommand{
		PropertyID: c.Param("id"),
		Dates:      dates,
	}
	result, err := bus.Send[availabilityapp.MarkBookedCommand, dto.BookedDates](c.Request.Context(), h.Bus, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookedDatesHTTP = BookedDatesHandler{}
