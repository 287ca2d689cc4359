package booking

import (
	"fmt"
	"time"

	"stayable/internal/domain/availability"
	"stayable/internal/domain/property"
	"stayable/internal/domain/shared/daterange"
)

// MaxStayNights is the form-level hard ceiling on stay length. It is
// checked independently of any rule's own max-stay: both caps are real
// and either can reject a stay on its own.
const MaxStayNights = 28

// ErrorKind classifies a field validation failure. Failures are data,
// not control flow: the full map is returned so a form can surface
// every field's problem at once.
type ErrorKind string

const (
	ErrMissingField      ErrorKind = "MISSING_FIELD"
	ErrPastDate          ErrorKind = "PAST_DATE"
	ErrInvalidRange      ErrorKind = "INVALID_RANGE"
	ErrMaxStayExceeded   ErrorKind = "MAX_STAY_EXCEEDED"
	ErrMinStayNotMet     ErrorKind = "MIN_STAY_NOT_MET"
	ErrInvalidGuestCount ErrorKind = "INVALID_GUEST_COUNT"
	ErrCapacityExceeded  ErrorKind = "CAPACITY_EXCEEDED"
)

type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps form field names to their first applicable failure.
type FieldErrors map[string]FieldError

func (fe FieldErrors) OK() bool { return len(fe) == 0 }

// Form field names as they appear in error maps and request payloads.
const (
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldGuests   = "guests"
)

// StayForm is a completed booking form: dates may arrive from the
// calendar, direct field entry or a deep link, so the form is validated
// on its own regardless of how the dates were chosen. Zero time means
// the field was not filled in.
type StayForm struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Range returns the form's stay as a validated DateRange.
func (f StayForm) Range() (daterange.DateRange, error) {
	return daterange.New(f.CheckIn, f.CheckOut)
}

// ValidateStay checks a stay form against the property capacity and the
// global stay invariants. Every applicable failure is collected; there
// is no short-circuiting at the first error.
func ValidateStay(form StayForm, prop property.Property, now time.Time) FieldErrors {
	errs := make(FieldErrors)
	today := daterange.Day(now)

	switch {
	case form.CheckIn.IsZero():
		errs[FieldCheckIn] = FieldError{Kind: ErrMissingField, Message: "check-in date is required"}
	case daterange.Day(form.CheckIn).Before(today):
		errs[FieldCheckIn] = FieldError{Kind: ErrPastDate, Message: "check-in date cannot be in the past"}
	}

	switch {
	case form.CheckOut.IsZero():
		errs[FieldCheckOut] = FieldError{Kind: ErrMissingField, Message: "check-out date is required"}
	case !form.CheckIn.IsZero() && !daterange.Day(form.CheckOut).After(daterange.Day(form.CheckIn)):
		errs[FieldCheckOut] = FieldError{Kind: ErrInvalidRange, Message: "check-out must be after check-in"}
	case !form.CheckIn.IsZero():
		nights := daterange.DaysBetween(daterange.Day(form.CheckIn), daterange.Day(form.CheckOut))
		if nights > MaxStayNights {
			errs[FieldCheckOut] = FieldError{
				Kind:    ErrMaxStayExceeded,
				Message: fmt.Sprintf("stay cannot exceed %d nights", MaxStayNights),
			}
		}
	}

	switch {
	case form.Guests < 1:
		errs[FieldGuests] = FieldError{Kind: ErrInvalidGuestCount, Message: "at least one guest is required"}
	case form.Guests > prop.MaxGuests:
		errs[FieldGuests] = FieldError{
			Kind:    ErrCapacityExceeded,
			Message: fmt.Sprintf("property sleeps at most %d guests", prop.MaxGuests),
		}
	}

	return errs
}

// ValidateStayBounds applies the rule-level stay bounds for the form's
// check-in day. The calendar enforces these per click, but a form whose
// dates were typed or deep-linked never went through the calendar, so
// the bounds are re-checked here. Call only with a well-formed range.
func ValidateStayBounds(form StayForm, rules availability.RuleIndex, defaults availability.StayBounds) FieldErrors {
	errs := make(FieldErrors)
	dr, err := form.Range()
	if err != nil {
		return errs
	}
	bounds := rules.BoundsAt(dr.CheckIn, defaults)
	nights := dr.Nights()
	if nights < bounds.MinStay {
		errs[FieldCheckOut] = FieldError{
			Kind:    ErrMinStayNotMet,
			Message: fmt.Sprintf("stay must be at least %d nights", bounds.MinStay),
		}
	}
	if bounds.MaxStay > 0 && nights > bounds.MaxStay {
		errs[FieldCheckOut] = FieldError{
			Kind:    ErrMaxStayExceeded,
			Message: fmt.Sprintf("stay cannot exceed %d nights", bounds.MaxStay),
		}
	}
	return errs
}
