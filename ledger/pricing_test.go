package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"techstore/models"
)

func TestShippingThreshold(t *testing.T) {
	p := DefaultPricing()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"below threshold", 100000, 30000},
		{"at threshold", 500000, 30000},
		{"just above threshold", 500001, 0},
		{"far above threshold", 29990000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShippingFee(tt.subtotal, p))
		})
	}
}

func TestTaxRounding(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, int64(2999000), Tax(29990000, p))
	assert.Equal(t, int64(1), Tax(5, p))
	assert.Equal(t, int64(0), Tax(4, p))
	assert.Equal(t, int64(2), Tax(15, p))
}

func TestDeriveTotals(t *testing.T) {
	p := DefaultPricing()

	t.Run("empty cart owes nothing", func(t *testing.T) {
		assert.Equal(t, models.Totals{}, DeriveTotals(nil, p))
	})

	t.Run("small order pays shipping", func(t *testing.T) {
		items := []models.LineItem{{ID: "a", Price: 250000, Quantity: 2}}
		got := DeriveTotals(items, p)
		assert.Equal(t, models.Totals{
			Subtotal:    500000,
			ShippingFee: 30000,
			Tax:         50000,
			Total:       580000,
			ItemCount:   2,
		}, got)
	})

	t.Run("custom pricing", func(t *testing.T) {
		custom := Pricing{FreeShippingThreshold: 1000, FlatShippingFee: 50, TaxRate: 0.05}
		items := []models.LineItem{{ID: "a", Price: 300, Quantity: 3}}
		got := DeriveTotals(items, custom)
		assert.Equal(t, int64(900), got.Subtotal)
		assert.Equal(t, int64(50), got.ShippingFee)
		assert.Equal(t, int64(45), got.Tax)
		assert.Equal(t, int64(995), got.Total)
	})
}
