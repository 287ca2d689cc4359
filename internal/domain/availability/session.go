package availability

import (
	"time"

	"stayable/internal/domain/shared/daterange"
)

// CalendarContext carries everything a selection transition needs to
// judge a clicked day: the current day, the host's rules, dates already
// taken by confirmed bookings, and the property-level default stay
// bounds used when no rule covers the check-in day.
type CalendarContext struct {
	Today       time.Time
	Rules       RuleIndex
	Unavailable DateSet
	Defaults    StayBounds
}

// Available reports whether a day can be clicked: not in the past, not
// covered by a blocking rule, not already booked.
func (cc CalendarContext) Available(day time.Time) bool {
	day = daterange.Day(day)
	if day.Before(daterange.Day(cc.Today)) {
		return false
	}
	if cc.Rules.BlocksDay(day) {
		return false
	}
	return !cc.Unavailable.Contains(day)
}

// DayClass is the per-day render metadata for a calendar grid cell.
type DayClass struct {
	Past      bool
	Available bool
	Selected  bool
	InRange   bool
}

// SelectionSession is the guest's two-click check-in/check-out picker
// state. It is an explicit value: every transition takes a session and
// returns the next one, so sequences of clicks are unit-testable
// without any UI harness. Zero time means "unset".
type SelectionSession struct {
	CheckIn           time.Time
	CheckOut          time.Time
	SelectingCheckout bool
}

// Clear resets the session unconditionally.
func (s SelectionSession) Clear() SelectionSession {
	return SelectionSession{}
}

// Complete reports whether both ends of the stay are chosen.
func (s SelectionSession) Complete() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

// Nights is the stay length of a complete selection, zero otherwise.
func (s SelectionSession) Nights() int {
	if !s.Complete() {
		return 0
	}
	return daterange.DaysBetween(s.CheckIn, s.CheckOut)
}

// Classify produces render metadata for one grid day.
func (s SelectionSession) Classify(day time.Time, cc CalendarContext) DayClass {
	day = daterange.Day(day)
	cls := DayClass{
		Past:     day.Before(daterange.Day(cc.Today)),
		Selected: (!s.CheckIn.IsZero() && daterange.SameDay(day, s.CheckIn)) || (!s.CheckOut.IsZero() && daterange.SameDay(day, s.CheckOut)),
	}
	cls.Available = !cls.Past && !cc.Rules.BlocksDay(day) && !cc.Unavailable.Contains(day)
	if s.Complete() {
		cls.InRange = !day.Before(s.CheckIn) && !day.After(s.CheckOut)
	}
	return cls
}

// Click advances the session by one calendar click.
//
// Clicks on past, blocked or booked days are ignored rather than
// surfaced as errors: a disabled cell should not be clickable in a
// well-behaved UI, and a stray click must not corrupt the selection.
//
// With no check-in yet, the click arms checkout selection at the
// clicked day. Otherwise the click is resolved as a checkout attempt
// against the current check-in: a day at or before check-in restarts
// the selection there; a stay longer than the applicable max restarts
// at the clicked day (the guest is taken to be picking a fresh start
// point); a stay shorter than the applicable min is ignored; anything
// else commits the checkout. Stay bounds come from the rule covering
// the check-in day, falling back to the context defaults.
func (s SelectionSession) Click(day time.Time, cc CalendarContext) SelectionSession {
	day = daterange.Day(day)
	if !cc.Available(day) {
		return s
	}
	if s.CheckIn.IsZero() {
		return s.startAt(day)
	}
	return s.resolveCheckout(day, cc)
}

func (s SelectionSession) startAt(day time.Time) SelectionSession {
	return SelectionSession{CheckIn: day, SelectingCheckout: true}
}

func (s SelectionSession) resolveCheckout(day time.Time, cc CalendarContext) SelectionSession {
	if !day.After(s.CheckIn) {
		// Re-clicking the check-in day (or any earlier day) restarts
		// the selection there instead of erroring.
		return s.startAt(day)
	}
	nights := daterange.DaysBetween(s.CheckIn, day)
	bounds := cc.Rules.BoundsAt(s.CheckIn, cc.Defaults)
	if bounds.MaxStay > 0 && nights > bounds.MaxStay {
		return s.startAt(day)
	}
	if nights < bounds.MinStay {
		return s
	}
	s.CheckOut = day
	s.SelectingCheckout = false
	return s
}

// Range returns the selected stay as a validated DateRange.
func (s SelectionSession) Range() (daterange.DateRange, error) {
	return daterange.New(s.CheckIn, s.CheckOut)
}
