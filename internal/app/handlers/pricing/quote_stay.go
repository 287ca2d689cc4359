package pricing

import (
	"context"
	"time"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	domainavailability "stayable/internal/domain/availability"
	domainpricing "stayable/internal/domain/pricing"
	domainproperty "stayable/internal/domain/property"
	"stayable/internal/domain/shared/daterange"
)

const quoteStayKey = "pricing.quote"

// QuoteStayQuery prices a candidate stay against the property's base
// rate and its rule overrides. The range must already be validated; the
// resolver does not re-check availability.
type QuoteStayQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

func (q QuoteStayQuery) Key() string { return quoteStayKey }

type QuoteStayHandler struct {
	Properties domainproperty.Repository
	Rules      domainavailability.Repository
}

func (h *QuoteStayHandler) Handle(ctx context.Context, q QuoteStayQuery) (dto.Quote, error) {
	dr, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.Quote{}, err
	}
	prop, err := h.Properties.ByID(ctx, domainproperty.PropertyID(q.PropertyID))
	if err != nil {
		return dto.Quote{}, err
	}
	rs, err := h.Rules.RuleSet(ctx, prop.ID)
	if err != nil {
		return dto.Quote{}, err
	}
	breakdown, err := domainpricing.Quote(dr, prop.BaseRate, rs.Index())
	if err != nil {
		return dto.Quote{}, err
	}
	return dto.MapQuote(q.PropertyID, dto.FormatDay(dr.CheckIn), dto.FormatDay(dr.CheckOut), breakdown), nil
}

var _ bus.Handler[QuoteStayQuery, dto.Quote] = (*QuoteStayHandler)(nil)
