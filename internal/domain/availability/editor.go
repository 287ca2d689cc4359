package availability

import (
	"context"
	"time"

	"stayable/internal/domain/property"
	"stayable/internal/domain/shared/daterange"
	"stayable/internal/domain/shared/events"
	"stayable/internal/domain/shared/money"
)

// RuleForm carries the host's input for creating or updating a rule.
type RuleForm struct {
	Available     bool
	MinStay       int
	MaxStay       int
	PriceOverride money.Money
	Reason        string
}

// RuleSet is the host-facing aggregate owning a property's date rules.
// The slice order is the declaration order and doubles as lookup
// priority: RuleIndex resolves overlaps first-match-wins, so rules
// created later never shadow earlier overlapping ones.
type RuleSet struct {
	PropertyID property.PropertyID
	Rules      []DateRule
	Version    int64
	events.Recorder
}

// Repository persists rule sets; durability is owned by the caller side.
type Repository interface {
	RuleSet(ctx context.Context, id property.PropertyID) (*RuleSet, error)
	Save(ctx context.Context, rs *RuleSet) error
}

func NewRuleSet(id property.PropertyID) *RuleSet {
	return &RuleSet{PropertyID: id}
}

// Index wraps the current rules for date lookups.
func (rs *RuleSet) Index() RuleIndex {
	return NewRuleIndex(rs.Rules)
}

// CreateRule turns a pending date selection into a new rule spanning
// the min and max of the selected days: the span is always contiguous
// even when the host's clicks were not, gaps inside it are absorbed.
// The rule is appended, which makes it the lowest-priority match for
// any day already covered by an older rule. Returns the full updated
// collection; the pending selection is the caller's to clear.
func (rs *RuleSet) CreateRule(id RuleID, selected DateSet, form RuleForm, now time.Time) ([]DateRule, error) {
	start, end, ok := selected.Bounds()
	if !ok {
		return nil, ErrEmptySelection
	}
	rule := DateRule{
		ID:            id,
		StartDate:     start,
		EndDate:       end,
		Available:     form.Available,
		MinStay:       form.MinStay,
		MaxStay:       form.MaxStay,
		PriceOverride: form.PriceOverride,
		Reason:        form.Reason,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	rs.Rules = append(rs.Rules, rule)
	rs.Record(RuleCreated{PropertyID: rs.PropertyID, RuleID: id, Span: span(rule), At: daterange.Day(now)})
	return rs.snapshot(), nil
}

// UpdateRule mutates the identified rule's fields in place; the span is
// fixed at creation and never changes on update.
func (rs *RuleSet) UpdateRule(id RuleID, form RuleForm, now time.Time) ([]DateRule, error) {
	idx := rs.indexOf(id)
	if idx == -1 {
		return nil, ErrRuleNotFound
	}
	updated := rs.Rules[idx]
	updated.Available = form.Available
	updated.MinStay = form.MinStay
	updated.MaxStay = form.MaxStay
	updated.PriceOverride = form.PriceOverride
	updated.Reason = form.Reason
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	rs.Rules[idx] = updated
	rs.Record(RuleUpdated{PropertyID: rs.PropertyID, RuleID: id, Span: span(updated), At: daterange.Day(now)})
	return rs.snapshot(), nil
}

// DeleteRule removes the identified rule; no cascading effects.
func (rs *RuleSet) DeleteRule(id RuleID, now time.Time) ([]DateRule, error) {
	idx := rs.indexOf(id)
	if idx == -1 {
		return nil, ErrRuleNotFound
	}
	removed := rs.Rules[idx]
	rs.Rules = append(rs.Rules[:idx], rs.Rules[idx+1:]...)
	rs.Record(RuleDeleted{PropertyID: rs.PropertyID, RuleID: id, Span: span(removed), At: daterange.Day(now)})
	return rs.snapshot(), nil
}

func (rs *RuleSet) indexOf(id RuleID) int {
	for i := range rs.Rules {
		if rs.Rules[i].ID == id {
			return i
		}
	}
	return -1
}

func (rs *RuleSet) snapshot() []DateRule {
	out := make([]DateRule, len(rs.Rules))
	copy(out, rs.Rules)
	return out
}

// PendingSelection is the editor's scratch set of clicked days, built
// before a rule exists. Clicks toggle membership and carry no ordering.
type PendingSelection struct {
	Dates DateSet
}

func NewPendingSelection() *PendingSelection {
	return &PendingSelection{Dates: NewDateSet()}
}

// ToggleDate adds the day to the pending set, or removes it when
// already present.
func (p *PendingSelection) ToggleDate(day time.Time) {
	if p.Dates.Contains(day) {
		p.Dates.Remove(day)
		return
	}
	p.Dates.Add(day)
}

func (p *PendingSelection) Clear() {
	p.Dates = NewDateSet()
}
