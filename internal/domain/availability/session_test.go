package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(rules []DateRule) CalendarContext {
	return CalendarContext{
		Today:       day(2024, time.May, 1),
		Rules:       NewRuleIndex(rules),
		Unavailable: NewDateSet(),
		Defaults:    StayBounds{MinStay: 1, MaxStay: 28},
	}
}

func TestSelectionSession_ClickSequence(t *testing.T) {
	cc := testContext(nil)

	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	assert.Equal(t, day(2024, 6, 1), s.CheckIn)
	assert.True(t, s.CheckOut.IsZero())
	assert.True(t, s.SelectingCheckout)

	s = s.Click(day(2024, 6, 4), cc)
	assert.Equal(t, day(2024, 6, 1), s.CheckIn)
	assert.Equal(t, day(2024, 6, 4), s.CheckOut)
	assert.False(t, s.SelectingCheckout)
	assert.Equal(t, 3, s.Nights())
}

func TestSelectionSession_BlockedDateIgnored(t *testing.T) {
	// Rule [2024-06-10, 2024-06-15] unavailable: clicking inside it is
	// ignored and check-in stays unset.
	cc := testContext([]DateRule{{
		ID:        "block",
		StartDate: day(2024, 6, 10),
		EndDate:   day(2024, 6, 15),
		Available: false,
	}})

	var s SelectionSession
	s = s.Click(day(2024, 6, 12), cc)
	assert.True(t, s.CheckIn.IsZero())
	assert.False(t, s.SelectingCheckout)
}

func TestSelectionSession_PastDateIgnored(t *testing.T) {
	cc := testContext(nil)
	var s SelectionSession
	s = s.Click(day(2024, 4, 30), cc)
	assert.True(t, s.CheckIn.IsZero())
}

func TestSelectionSession_BookedDateIgnored(t *testing.T) {
	cc := testContext(nil)
	cc.Unavailable.Add(day(2024, 6, 3))
	var s SelectionSession
	s = s.Click(day(2024, 6, 3), cc)
	assert.True(t, s.CheckIn.IsZero())
}

func TestSelectionSession_MinStayTooShortIgnored(t *testing.T) {
	// Rule at check-in demands 3 nights; a 1-night checkout click is
	// ignored and the selection is unchanged.
	cc := testContext([]DateRule{{
		ID:        "min3",
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
		Available: true,
		MinStay:   3,
	}})

	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	s = s.Click(day(2024, 6, 2), cc)
	assert.Equal(t, day(2024, 6, 1), s.CheckIn)
	assert.True(t, s.CheckOut.IsZero())
	assert.True(t, s.SelectingCheckout)
}

func TestSelectionSession_MaxStayRestartsAtClickedDay(t *testing.T) {
	// Rule at check-in caps the stay at 5 nights; a 9-night checkout
	// click restarts the selection at the clicked day.
	cc := testContext([]DateRule{{
		ID:        "max5",
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
		Available: true,
		MaxStay:   5,
	}})

	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	s = s.Click(day(2024, 6, 10), cc)
	assert.Equal(t, day(2024, 6, 10), s.CheckIn)
	assert.True(t, s.CheckOut.IsZero())
	assert.True(t, s.SelectingCheckout)
}

func TestSelectionSession_SameDayClickRearmsCheckout(t *testing.T) {
	cc := testContext(nil)
	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	s = s.Click(day(2024, 6, 1), cc)
	// Restart at the same day, not a clear.
	assert.Equal(t, day(2024, 6, 1), s.CheckIn)
	assert.True(t, s.CheckOut.IsZero())
	assert.True(t, s.SelectingCheckout)
}

func TestSelectionSession_EarlierDayRestartsSelection(t *testing.T) {
	cc := testContext(nil)
	var s SelectionSession
	s = s.Click(day(2024, 6, 10), cc)
	s = s.Click(day(2024, 6, 5), cc)
	assert.Equal(t, day(2024, 6, 5), s.CheckIn)
	assert.True(t, s.CheckOut.IsZero())
}

func TestSelectionSession_ClickAfterCompleteReappliesCheckoutRule(t *testing.T) {
	cc := testContext(nil)
	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	s = s.Click(day(2024, 6, 4), cc)
	require.True(t, s.Complete())

	// A later click against the existing check-in extends the stay.
	s = s.Click(day(2024, 6, 6), cc)
	assert.Equal(t, day(2024, 6, 1), s.CheckIn)
	assert.Equal(t, day(2024, 6, 6), s.CheckOut)
}

func TestSelectionSession_ClearIsIdempotent(t *testing.T) {
	cc := testContext(nil)
	var s SelectionSession
	s = s.Click(day(2024, 6, 1), cc)
	s = s.Click(day(2024, 6, 4), cc)

	once := s.Clear()
	twice := s.Clear().Clear()
	assert.Equal(t, SelectionSession{}, once)
	assert.Equal(t, once, twice)
}

func TestSelectionSession_CompletedSelectionAlwaysValid(t *testing.T) {
	// Any click sequence that produces a checkout leaves a stay that
	// honors the bounds in effect at check-in.
	rules := []DateRule{
		{ID: "bounded", StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 14), Available: true, MinStay: 2, MaxStay: 7},
		{ID: "block", StartDate: day(2024, 6, 20), EndDate: day(2024, 6, 22), Available: false},
	}
	cc := testContext(rules)

	clicks := []time.Time{
		day(2024, 6, 2),
		day(2024, 6, 3),  // 1 night, below min, ignored
		day(2024, 6, 21), // blocked, ignored
		day(2024, 6, 18), // 16 nights, above max, restart
		day(2024, 6, 25),
	}
	var s SelectionSession
	for _, c := range clicks {
		s = s.Click(c, cc)
		if s.Complete() {
			require.True(t, s.CheckIn.Before(s.CheckOut))
			bounds := cc.Rules.BoundsAt(s.CheckIn, cc.Defaults)
			nights := s.Nights()
			require.GreaterOrEqual(t, nights, bounds.MinStay)
			if bounds.MaxStay > 0 {
				require.LessOrEqual(t, nights, bounds.MaxStay)
			}
		}
	}
	// Final state: restart at June 18, then checkout at June 25.
	assert.Equal(t, day(2024, 6, 18), s.CheckIn)
	assert.Equal(t, day(2024, 6, 25), s.CheckOut)
}

func TestSelectionSession_Classify(t *testing.T) {
	cc := testContext([]DateRule{{
		ID:        "block",
		StartDate: day(2024, 6, 10),
		EndDate:   day(2024, 6, 12),
		Available: false,
	}})
	s := SelectionSession{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 5)}

	tests := []struct {
		name string
		day  time.Time
		want DayClass
	}{
		{name: "past", day: day(2024, 4, 1), want: DayClass{Past: true}},
		{name: "check-in selected and in range", day: day(2024, 6, 1), want: DayClass{Available: true, Selected: true, InRange: true}},
		{name: "mid-range", day: day(2024, 6, 3), want: DayClass{Available: true, InRange: true}},
		{name: "check-out selected and in range", day: day(2024, 6, 5), want: DayClass{Available: true, Selected: true, InRange: true}},
		{name: "blocked by rule", day: day(2024, 6, 11), want: DayClass{}},
		{name: "plain available", day: day(2024, 6, 20), want: DayClass{Available: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Classify(tt.day, cc))
		})
	}
}
