package availability

import (
	"context"
	"errors"
	"time"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	"stayable/internal/app/policies"
	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
)

const markBookedKey = "availability.booked.mark"

var ErrNoBookedDates = errors.New("availability: no booked dates given")

// MarkBookedCommand folds dates of a confirmed stay into the property's
// unavailable set. The bookings collaborator calls this after it settles
// a reservation; the calendar treats the dates as unclickable from then
// on.
type MarkBookedCommand struct {
	PropertyID string
	Dates      []time.Time
}

func (c MarkBookedCommand) Key() string { return markBookedKey }

type MarkBookedHandler struct {
	Recorder policies.BookedDatesRecorder
}

func (h *MarkBookedHandler) Handle(ctx context.Context, cmd MarkBookedCommand) (dto.BookedDates, error) {
	if len(cmd.Dates) == 0 {
		return dto.BookedDates{}, ErrNoBookedDates
	}
	taken := domainavailability.NewDateSet(cmd.Dates...)
	if err := h.Recorder.MarkBooked(ctx, domainproperty.PropertyID(cmd.PropertyID), taken); err != nil {
		return dto.BookedDates{}, err
	}
	return dto.MapBookedDates(cmd.PropertyID, taken), nil
}

var _ bus.Handler[MarkBookedCommand, dto.BookedDates] = (*MarkBookedHandler)(nil)
