package dto

import "stayable/internal/domain/booking"

// FieldError mirrors booking.FieldError on the wire.
type FieldError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StayValidation is the outcome of validating a booking form: either OK
// with the validated tuple and its quote, or the complete per-field
// error map so a form can render every problem at once.
type StayValidation struct {
	OK     bool                  `json:"ok"`
	Errors map[string]FieldError `json:"errors,omitempty"`
	Stay   *ValidatedStay        `json:"stay,omitempty"`
}

// ValidatedStay is the tuple handed off to booking creation.
type ValidatedStay struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Quote      Quote  `json:"quote"`
}

func MapFieldErrors(errs booking.FieldErrors) map[string]FieldError {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]FieldError, len(errs))
	for field, fe := range errs {
		out[field] = FieldError{Kind: string(fe.Kind), Message: fe.Message}
	}
	return out
}
