package availability

import (
	"errors"
	"time"

	"stayable/internal/domain/shared/daterange"
	"stayable/internal/domain/shared/money"
)

var (
	ErrInvalidSpan     = errors.New("availability: rule start must not be after end")
	ErrInvalidOverride = errors.New("availability: price override must be positive")
	ErrStayBoundsOrder = errors.New("availability: min stay must not exceed max stay")
	ErrRuleNotFound    = errors.New("availability: rule not found")
	ErrEmptySelection  = errors.New("availability: no dates selected")
)

type RuleID string

// DateRule is a host-declared override for a contiguous span of calendar
// days: either a block, or availability with custom stay bounds and an
// optional nightly price override. Both span boundaries are inclusive days.
type DateRule struct {
	ID        RuleID
	StartDate time.Time
	EndDate   time.Time
	Available bool

	// Stay bounds in nights; zero means "not set" and falls back to the
	// default policy (min 1, max unbounded). Meaningful only when Available.
	MinStay int
	MaxStay int

	// PriceOverride replaces the property's base nightly rate for nights
	// inside the span. Zero value means no override.
	PriceOverride money.Money

	// Reason annotates blocked spans for display; no behavioral effect.
	Reason string
}

func (r DateRule) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() || r.StartDate.After(r.EndDate) {
		return ErrInvalidSpan
	}
	if !r.PriceOverride.IsZero() && !r.PriceOverride.IsPositive() {
		return ErrInvalidOverride
	}
	if r.MinStay < 0 || r.MaxStay < 0 {
		return ErrStayBoundsOrder
	}
	if r.MinStay > 0 && r.MaxStay > 0 && r.MinStay > r.MaxStay {
		return ErrStayBoundsOrder
	}
	return nil
}

// ContainsDay reports whether the day falls inside the inclusive span.
func (r DateRule) ContainsDay(t time.Time) bool {
	t = daterange.Day(t)
	return !t.Before(r.StartDate) && !t.After(r.EndDate)
}

// Blocks reports whether the rule forbids staying on days it covers.
func (r DateRule) Blocks() bool {
	return !r.Available
}

// StayBounds is the min/max-nights policy in effect for a check-in day.
type StayBounds struct {
	MinStay int
	MaxStay int // zero means unbounded
}

// Bounds resolves the rule's stay policy, applying the default of
// "min 1 night, no upper bound" for unset fields.
func (r DateRule) Bounds() StayBounds {
	b := StayBounds{MinStay: r.MinStay, MaxStay: r.MaxStay}
	if b.MinStay == 0 {
		b.MinStay = 1
	}
	return b
}

// RuleIndex resolves a single calendar day to the rule covering it.
// Lookup is first-match-wins over the stored order: earlier-declared
// rules take precedence on overlap. The source data is a flat list with
// no interval-merge semantics, so this deliberately stays a linear scan.
type RuleIndex struct {
	rules []DateRule
}

func NewRuleIndex(rules []DateRule) RuleIndex {
	return RuleIndex{rules: rules}
}

// RuleFor returns the first rule whose span contains the given day, or
// nil when no rule applies (default availability, default price).
// Pure; callers pass whole-day values.
func (ix RuleIndex) RuleFor(day time.Time) *DateRule {
	day = daterange.Day(day)
	for i := range ix.rules {
		if ix.rules[i].ContainsDay(day) {
			return &ix.rules[i]
		}
	}
	return nil
}

// BoundsAt resolves the stay-length policy for a prospective check-in
// day: the covering available rule's bounds, or the supplied defaults
// when no rule applies or the covering rule is a block.
func (ix RuleIndex) BoundsAt(day time.Time, defaults StayBounds) StayBounds {
	r := ix.RuleFor(day)
	if r == nil || r.Blocks() {
		return defaults
	}
	return r.Bounds()
}

// BlocksDay reports whether a blocking rule covers the day.
func (ix RuleIndex) BlocksDay(day time.Time) bool {
	r := ix.RuleFor(day)
	return r != nil && r.Blocks()
}

// DateSet is an unordered set of calendar days keyed by midnight UTC.
type DateSet map[time.Time]struct{}

func NewDateSet(days ...time.Time) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(day time.Time)           { s[daterange.Day(day)] = struct{}{} }
func (s DateSet) Remove(day time.Time)        { delete(s, daterange.Day(day)) }
func (s DateSet) Contains(day time.Time) bool { _, ok := s[daterange.Day(day)]; return ok }
func (s DateSet) Len() int                    { return len(s) }

// Bounds returns the earliest and latest day in the set.
func (s DateSet) Bounds() (min, max time.Time, ok bool) {
	for d := range s {
		if !ok || d.Before(min) {
			min = d
		}
		if !ok || d.After(max) {
			max = d
		}
		ok = true
	}
	return min, max, ok
}
