package policies

import (
	"context"

	"stayable/internal/domain/availability"
	"stayable/internal/domain/property"
)

// BookedDates supplies the dates already taken by confirmed bookings,
// distinct from host-declared rules. The backing bookings service is an
// external collaborator; the engine only consumes the set.
type BookedDates interface {
	UnavailableDates(ctx context.Context, id property.PropertyID) (availability.DateSet, error)
}

// BookedDatesRecorder accepts confirmed-stay dates reported by the
// bookings collaborator and folds them into the unavailable set.
type BookedDatesRecorder interface {
	MarkBooked(ctx context.Context, id property.PropertyID, dates availability.DateSet) error
}
