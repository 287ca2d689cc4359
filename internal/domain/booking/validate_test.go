package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayable/internal/domain/availability"
	"stayable/internal/domain/property"
	"stayable/internal/domain/shared/money"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var testProperty = property.Property{
	ID:        "prop-1",
	MaxGuests: 4,
	BaseRate:  money.Must(10000, "USD"),
}

func TestValidateStay_AllErrorsCollected(t *testing.T) {
	// A form missing both dates with guests=0 reports exactly three
	// failures at once; nothing short-circuits.
	now := day(2024, time.May, 1)
	errs := ValidateStay(StayForm{Guests: 0}, testProperty, now)

	require.Len(t, errs, 3)
	assert.Equal(t, ErrMissingField, errs[FieldCheckIn].Kind)
	assert.Equal(t, ErrMissingField, errs[FieldCheckOut].Kind)
	assert.Equal(t, ErrInvalidGuestCount, errs[FieldGuests].Kind)
	assert.False(t, errs.OK())
}

func TestValidateStay(t *testing.T) {
	now := day(2024, time.May, 1)

	tests := []struct {
		name      string
		form      StayForm
		wantField string
		wantKind  ErrorKind
	}{
		{
			name:      "past check-in",
			form:      StayForm{CheckIn: day(2024, 4, 20), CheckOut: day(2024, 4, 25), Guests: 2},
			wantField: FieldCheckIn,
			wantKind:  ErrPastDate,
		},
		{
			name:      "check-out equals check-in",
			form:      StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 1), Guests: 2},
			wantField: FieldCheckOut,
			wantKind:  ErrInvalidRange,
		},
		{
			name:      "check-out before check-in",
			form:      StayForm{CheckIn: day(2024, 6, 5), CheckOut: day(2024, 6, 1), Guests: 2},
			wantField: FieldCheckOut,
			wantKind:  ErrInvalidRange,
		},
		{
			name:      "over the 28-night ceiling",
			form:      StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 30), Guests: 2},
			wantField: FieldCheckOut,
			wantKind:  ErrMaxStayExceeded,
		},
		{
			name:      "too many guests",
			form:      StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 5), Guests: 5},
			wantField: FieldGuests,
			wantKind:  ErrCapacityExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStay(tt.form, testProperty, now)
			require.Contains(t, errs, tt.wantField)
			assert.Equal(t, tt.wantKind, errs[tt.wantField].Kind)
		})
	}
}

func TestValidateStay_OK(t *testing.T) {
	now := day(2024, time.May, 1)
	errs := ValidateStay(StayForm{
		CheckIn:  day(2024, 6, 1),
		CheckOut: day(2024, 6, 29), // exactly 28 nights
		Guests:   4,
	}, testProperty, now)
	assert.True(t, errs.OK())
}

func TestValidateStay_MessagesCarryNumericBounds(t *testing.T) {
	now := day(2024, time.May, 1)

	errs := ValidateStay(StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 5), Guests: 9}, testProperty, now)
	require.Contains(t, errs, FieldGuests)
	assert.Contains(t, errs[FieldGuests].Message, "4")

	errs = ValidateStay(StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 7, 15), Guests: 2}, testProperty, now)
	require.Contains(t, errs, FieldCheckOut)
	assert.Contains(t, errs[FieldCheckOut].Message, "28")
}

func TestValidateStayBounds(t *testing.T) {
	rules := availability.NewRuleIndex([]availability.DateRule{{
		ID:        "bounded",
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
		Available: true,
		MinStay:   3,
		MaxStay:   7,
	}})
	defaults := availability.StayBounds{MinStay: 1, MaxStay: 28}

	tests := []struct {
		name     string
		form     StayForm
		wantKind ErrorKind
		ok       bool
	}{
		{
			name: "below rule min stay",
			form: StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 3)},
			// Same field the calendar guards, reported as data for
			// typed-in or deep-linked dates.
			wantKind: ErrMinStayNotMet,
		},
		{
			name:     "above rule max stay",
			form:     StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 12)},
			wantKind: ErrMaxStayExceeded,
		},
		{
			name: "within bounds",
			form: StayForm{CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 6)},
			ok:   true,
		},
		{
			name: "no rule uses defaults",
			form: StayForm{CheckIn: day(2024, 7, 1), CheckOut: day(2024, 7, 10)},
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStayBounds(tt.form, rules, defaults)
			if tt.ok {
				assert.True(t, errs.OK())
				return
			}
			require.Contains(t, errs, FieldCheckOut)
			assert.Equal(t, tt.wantKind, errs[FieldCheckOut].Kind)
		})
	}
}
