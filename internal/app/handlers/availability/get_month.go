package availability

import (
	"context"
	"time"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	"stayable/internal/app/policies"
	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
)

const getMonthKey = "availability.month"

// GetMonthQuery renders one month of the guest calendar, classifying
// each day against the rules, booked dates and the guest's current
// selection. Navigating months never mutates the selection.
type GetMonthQuery struct {
	PropertyID string
	Year       int
	Month      time.Month
	Selection  domainavailability.SelectionSession
}

func (q GetMonthQuery) Key() string { return getMonthKey }

type GetMonthHandler struct {
	Rules       domainavailability.Repository
	BookedDates policies.BookedDates
	Defaults    domainavailability.StayBounds
	Now         func() time.Time
}

func (h *GetMonthHandler) Handle(ctx context.Context, q GetMonthQuery) (dto.MonthView, error) {
	cc, err := calendarContext(ctx, q.PropertyID, h.Rules, h.BookedDates, h.Defaults, h.Now)
	if err != nil {
		return dto.MonthView{}, err
	}
	return dto.MapMonth(q.PropertyID, q.Year, q.Month, q.Selection, cc), nil
}

func calendarContext(
	ctx context.Context,
	propertyID string,
	rules domainavailability.Repository,
	booked policies.BookedDates,
	defaults domainavailability.StayBounds,
	now func() time.Time,
) (domainavailability.CalendarContext, error) {
	rs, err := rules.RuleSet(ctx, domainproperty.PropertyID(propertyID))
	if err != nil {
		return domainavailability.CalendarContext{}, err
	}
	unavailable := domainavailability.NewDateSet()
	if booked != nil {
		unavailable, err = booked.UnavailableDates(ctx, domainproperty.PropertyID(propertyID))
		if err != nil {
			return domainavailability.CalendarContext{}, err
		}
	}
	return domainavailability.CalendarContext{
		Today:       now(),
		Rules:       rs.Index(),
		Unavailable: unavailable,
		Defaults:    defaults,
	}, nil
}

var _ bus.Handler[GetMonthQuery, dto.MonthView] = (*GetMonthHandler)(nil)
