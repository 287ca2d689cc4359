package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	availabilityapp "stayable/internal/app/handlers/availability"
	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
)

type CalendarHandler struct {
	Bus bus.Bus
}

// Month serves the classified month grid. The guest's current selection
// rides along as query parameters so day classes reflect it.
func (h CalendarHandler) Month(c *gin.Context) {
	propertyID := c.Param("id")
	now := time.Now().UTC()

	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	monthNum, err := intQuery(c, "month", int(now.Month()))
	if err != nil || monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	selection, err := selectionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := availabilityapp.GetMonthQuery{
		PropertyID: propertyID,
		Year:       year,
		Month:      time.Month(monthNum),
		Selection:  selection,
	}
	result, err := bus.Send[availabilityapp.GetMonthQuery, dto.MonthView](c.Request.Context(), h.Bus, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type clickRequest struct {
	Date              string `json:"date" binding:"required"`
	CheckIn           string `json:"check_in"`
	CheckOut          string `json:"check_out"`
	SelectingCheckout bool   `json:"selecting_checkout"`
}

// Click advances the stateless selection session by one clicked day and
// returns the next session.
func (h CalendarHandler) Click(c *gin.Context) {
	propertyID := c.Param("id")
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := dto.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	selection, err := parseSelection(req.CheckIn, req.CheckOut, req.SelectingCheckout)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := availabilityapp.ClickSelectionQuery{
		PropertyID: propertyID,
		Selection:  selection,
		Date:       date,
	}
	result, err := bus.Send[availabilityapp.ClickSelectionQuery, dto.Selection](c.Request.Context(), h.Bus, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func selectionFromQuery(c *gin.Context) (domainavailability.SelectionSession, error) {
	selecting := c.Query("selecting_checkout") == "true"
	return parseSelection(c.Query("check_in"), c.Query("check_out"), selecting)
}

func parseSelection(checkIn, checkOut string, selecting bool) (domainavailability.SelectionSession, error) {
	var s domainavailability.SelectionSession
	var err error
	if s.CheckIn, err = dto.ParseDay(checkIn); err != nil {
		return s, errors.New("invalid check_in")
	}
	if s.CheckOut, err = dto.ParseDay(checkOut); err != nil {
		return s, errors.New("invalid check_out")
	}
	s.SelectingCheckout = selecting
	return s, nil
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainproperty.ErrNotFound), errors.Is(err, domainavailability.ErrRuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

var _ CalendarHTTP = CalendarHandler{}
