package dto

import (
	"stayable/internal/domain/availability"
)

// Rule is the wire form of a host's date rule.
type Rule struct {
	ID            string `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Available     bool   `json:"available"`
	MinStay       int    `json:"min_stay,omitempty"`
	MaxStay       int    `json:"max_stay,omitempty"`
	PriceOverride int64  `json:"price_override_cents,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// RuleList is the full rule collection after a mutation, in declaration
// (and therefore lookup-priority) order.
type RuleList struct {
	PropertyID string `json:"property_id"`
	Rules      []Rule `json:"rules"`
}

func MapRule(r availability.DateRule) Rule {
	out := Rule{
		ID:        string(r.ID),
		StartDate: FormatDay(r.StartDate),
		EndDate:   FormatDay(r.EndDate),
		Available: r.Available,
		MinStay:   r.MinStay,
		MaxStay:   r.MaxStay,
		Reason:    r.Reason,
	}
	if !r.PriceOverride.IsZero() {
		out.PriceOverride = r.PriceOverride.Amount
		out.Currency = r.PriceOverride.Currency
	}
	return out
}

func MapRuleList(propertyID string, rules []availability.DateRule) RuleList {
	out := RuleList{PropertyID: propertyID, Rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		out.Rules = append(out.Rules, MapRule(r))
	}
	return out
}
