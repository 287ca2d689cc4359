package pricing

import (
	"errors"
	"time"

	"stayable/internal/domain/availability"
	"stayable/internal/domain/shared/daterange"
	"stayable/internal/domain/shared/money"
)

var ErrEmptyStay = errors.New("pricing: stay must cover at least one night")

// Fee and tax rates in basis points of the nightly subtotal.
const (
	ServiceFeeBps = 1000 // 10%
	TaxBps        = 500  // 5%
)

// PriceBreakdown is the derived price of a candidate stay. It is never
// stored: it is recomputed from the selection and the rule set on every
// change, which is cheap at O(nights).
type PriceBreakdown struct {
	Nights     int
	Subtotal   money.Money
	ServiceFee money.Money
	Taxes      money.Money
	Total      money.Money
}

// Quote computes the deterministic breakdown for a validated stay.
//
// Each night in [CheckIn, CheckOut) is priced at the covering available
// rule's override, or the base rate when no rule applies. A night under
// a blocking rule should never reach pricing, since selection rejects
// it upstream; if one arrives anyway (direct form entry bypassing the
// calendar) it is priced at the base rate rather than failing, because
// availability enforcement is not this function's job.
//
// Service fee and taxes are each rounded to the cent independently
// before summation, so displayed line items always add up to the
// displayed total. Pure, no I/O; the range must already be validated.
func Quote(dr daterange.DateRange, baseRate money.Money, rules availability.RuleIndex) (PriceBreakdown, error) {
	nights := dr.Nights()
	if nights < 1 {
		return PriceBreakdown{}, ErrEmptyStay
	}

	subtotal := money.Money{Currency: baseRate.Currency}
	dr.EachNight(func(day time.Time) {
		subtotal.Amount += nightlyRate(day, baseRate, rules).Amount
	})

	fee := subtotal.BasisPoints(ServiceFeeBps)
	taxes := subtotal.BasisPoints(TaxBps)
	total := money.Money{
		Amount:   subtotal.Amount + fee.Amount + taxes.Amount,
		Currency: subtotal.Currency,
	}
	return PriceBreakdown{
		Nights:     nights,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Taxes:      taxes,
		Total:      total,
	}, nil
}

func nightlyRate(day time.Time, baseRate money.Money, rules availability.RuleIndex) money.Money {
	r := rules.RuleFor(day)
	if r == nil || r.Blocks() || r.PriceOverride.IsZero() {
		return baseRate
	}
	return r.PriceOverride
}
