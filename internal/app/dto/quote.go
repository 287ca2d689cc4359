package dto

import "stayable/internal/domain/pricing"

// Quote is the price breakdown shown to the guest before the payment
// hand-off. Amounts are integer cents.
type Quote struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	Subtotal   int64  `json:"subtotal_cents"`
	ServiceFee int64  `json:"service_fee_cents"`
	Taxes      int64  `json:"taxes_cents"`
	Total      int64  `json:"total_cents"`
	Currency   string `json:"currency"`
}

func MapQuote(propertyID, checkIn, checkOut string, pb pricing.PriceBreakdown) Quote {
	return Quote{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     pb.Nights,
		Subtotal:   pb.Subtotal.Amount,
		ServiceFee: pb.ServiceFee.Amount,
		Taxes:      pb.Taxes.Amount,
		Total:      pb.Total.Amount,
		Currency:   pb.Total.Currency,
	}
}
