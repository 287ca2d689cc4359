package booking

import (
	"context"
	"time"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	domainavailability "stayable/internal/domain/availability"
	domainbooking "stayable/internal/domain/booking"
	domainpricing "stayable/internal/domain/pricing"
	domainproperty "stayable/internal/domain/property"
)

const validateStayKey = "booking.validate"

// ValidateStayQuery runs the form-level second check on a completed
// booking form, independent of how the dates were chosen. On success
// the validated tuple is returned together with its quote, ready for
// the external booking-creation hand-off.
type ValidateStayQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

func (q ValidateStayQuery) Key() string { return validateStayKey }

type ValidateStayHandler struct {
	Properties domainproperty.Repository
	Rules      domainavailability.Repository
	Defaults   domainavailability.StayBounds
	Now        func() time.Time
}

func (h *ValidateStayHandler) Handle(ctx context.Context, q ValidateStayQuery) (dto.StayValidation, error) {
	prop, err := h.Properties.ByID(ctx, domainproperty.PropertyID(q.PropertyID))
	if err != nil {
		return dto.StayValidation{}, err
	}
	rs, err := h.Rules.RuleSet(ctx, prop.ID)
	if err != nil {
		return dto.StayValidation{}, err
	}

	form := domainbooking.StayForm{CheckIn: q.CheckIn, CheckOut: q.CheckOut, Guests: q.Guests}
	errs := domainbooking.ValidateStay(form, *prop, h.Now())
	if errs.OK() {
		// The rule-level stay bounds only apply once the range itself
		// is well-formed.
		for field, fe := range domainbooking.ValidateStayBounds(form, rs.Index(), h.Defaults) {
			errs[field] = fe
		}
	}
	if !errs.OK() {
		return dto.StayValidation{OK: false, Errors: dto.MapFieldErrors(errs)}, nil
	}

	dr, err := form.Range()
	if err != nil {
		return dto.StayValidation{}, err
	}
	breakdown, err := domainpricing.Quote(dr, prop.BaseRate, rs.Index())
	if err != nil {
		return dto.StayValidation{}, err
	}
	return dto.StayValidation{
		OK: true,
		Stay: &dto.ValidatedStay{
			PropertyID: q.PropertyID,
			CheckIn:    dto.FormatDay(dr.CheckIn),
			CheckOut:   dto.FormatDay(dr.CheckOut),
			Guests:     q.Guests,
			Quote:      dto.MapQuote(q.PropertyID, dto.FormatDay(dr.CheckIn), dto.FormatDay(dr.CheckOut), breakdown),
		},
	}, nil
}

var _ bus.Handler[ValidateStayQuery, dto.StayValidation] = (*ValidateStayHandler)(nil)
