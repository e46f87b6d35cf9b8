package ledger

import (
	"math"

	"techstore/models"
)

// Pricing holds the business constants the totals are derived from.
// Amounts are in the smallest currency unit.
type Pricing struct {
	FreeShippingThreshold int64   `json:"free_shipping_threshold"`
	FlatShippingFee       int64   `json:"flat_shipping_fee"`
	TaxRate               float64 `json:"tax_rate"`
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 500000,
		FlatShippingFee:       30000,
		TaxRate:               0.10,
	}
}

// DeriveTotals computes every total from items alone. An empty cart owes
// nothing, shipping included.
func DeriveTotals(items []models.LineItem, p Pricing) models.Totals {
	var t models.Totals
	for _, item := range items {
		t.Subtotal += item.Price * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}
	if len(items) == 0 {
		return t
	}

	t.ShippingFee = ShippingFee(t.Subtotal, p)
	t.Tax = Tax(t.Subtotal, p)
	t.Total = t.Subtotal + t.ShippingFee + t.Tax
	return t
}

// ShippingFee is free strictly above the threshold.
func ShippingFee(subtotal int64, p Pricing) int64 {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

func Tax(subtotal int64, p Pricing) int64 {
	return int64(math.Round(float64(subtotal) * p.TaxRate))
}
