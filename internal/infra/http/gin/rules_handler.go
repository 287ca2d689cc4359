package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	availabilityapp "stayable/internal/app/handlers/availability"
)

type HostRulesHandler struct {
	Bus bus.Bus
}

type rulePayloadRequest struct {
	Available     bool   `json:"available"`
	MinStay       int    `json:"min_stay"`
	MaxStay       int    `json:"max_stay"`
	PriceOverride int64  `json:"price_override_cents"`
	Currency      string `json:"currency"`
	Reason        string `json:"reason"`
}

func (r rulePayloadRequest) payload() availabilityapp.RulePayload {
	return availabilityapp.RulePayload{
		Available:     r.Available,
		MinStay:       r.MinStay,
		MaxStay:       r.MaxStay,
		PriceOverride: r.PriceOverride,
		Currency:      r.Currency,
		Reason:        r.Reason,
	}
}

type createRuleRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
	rulePayloadRequest
}

func (h HostRulesHandler) List(c *gin.Context) {
	query := availabilityapp.ListRulesQuery{PropertyID: c.Param("id")}
	result, err := bus.Send[availabilityapp.ListRulesQuery, dto.RuleList](c.Request.Context(), h.Bus, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostRulesHandler) Create(c *gin.Context) {
	var req createRuleRequest
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

	cmd := availabilityapp.CreateRuleCommand{
		PropertyID: c.Param("id"),
		Dates:      dates,
		Payload:    req.payload(),
	}
	result, err := bus.Send[availabilityapp.CreateRuleCommand, dto.RuleList](c.Request.Context(), h.Bus, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h HostRulesHandler) Update(c *gin.Context) {
	var req rulePayloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.UpdateRuleCommand{
		PropertyID: c.Param("id"),
		RuleID:     c.Param("ruleId"),
		Payload:    req.payload(),
	}
	result, err := bus.Send[availabilityapp.UpdateRuleCommand, dto.RuleList](c.Request.Context(), h.Bus, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostRulesHandler) Delete(c *gin.Context) {
	cmd := availabilityapp.DeleteRuleCommand{
		PropertyID: c.Param("id"),
		RuleID:     c.Param("ruleId"),
	}
	result, err := bus.Send[availabilityapp.DeleteRuleCommand, dto.RuleList](c.Request.Context(), h.Bus, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ HostRulesHTTP = HostRulesHandler{}
