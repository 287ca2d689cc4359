package availability

import (
	"time"

	"stayable/internal/domain/property"
)

// RuleSpan is the event-payload form of a rule's inclusive day span.
type RuleSpan struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
}

func span(r DateRule) RuleSpan {
	return RuleSpan{StartDate: r.StartDate, EndDate: r.EndDate, Available: r.Available}
}

type RuleCreated struct {
	PropertyID property.PropertyID `json:"property_id"`
	RuleID     RuleID              `json:"rule_id"`
	Span       RuleSpan            `json:"span"`
	At         time.Time           `json:"at"`
}

func (e RuleCreated) EventName() string     { return "availability.rule_created" }
func (e RuleCreated) AggregateID() string   { return string(e.PropertyID) }
func (e RuleCreated) OccurredAt() time.Time { return e.At }

type RuleUpdated struct {
	PropertyID property.PropertyID `json:"property_id"`
	RuleID     RuleID              `json:"rule_id"`
	Span       RuleSpan            `json:"span"`
	At         time.Time           `json:"at"`
}

func (e RuleUpdated) EventName() string     { return "availability.rule_updated" }
func (e RuleUpdated) AggregateID() string   { return string(e.PropertyID) }
func (e RuleUpdated) OccurredAt() time.Time { return e.At }

type RuleDeleted struct {
	PropertyID property.PropertyID `json:"property_id"`
	RuleID     RuleID              `json:"rule_id"`
	Span       RuleSpan            `json:"span"`
	At         time.Time           `json:"at"`
}

func (e RuleDeleted) EventName() string     { return "availability.rule_deleted" }
func (e RuleDeleted) AggregateID() string   { return string(e.PropertyID) }
func (e RuleDeleted) OccurredAt() time.Time { return e.At }
