package services

import (
	"techstore/ledger"
	"techstore/models"
	"techstore/money"
)

// CartService turns catalog product ids into ledger operations and renders
// ledger state for clients. The ledger itself belongs to the caller's session.
type CartService struct {
	catalog *CatalogService
}

func NewCartService(catalog *CatalogService) *CartService {
	return &CartService{catalog: catalog}
}

func (s *CartService) View(l *ledger.Ledger) models.CartView {
	return BuildCartView(l.Snapshot(), l.Pricing())
}

func (s *CartService) AddItem(l *ledger.Ledger, productID string, quantity int) (models.CartView, error) {
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return models.CartView{}, err
	}
	if err := l.AddItem(product, quantity); err != nil {
		return models.CartView{}, err
	}
	return s.View(l), nil
}

func (s *CartService) UpdateQuantity(l *ledger.Ledger, id string, quantity int) (models.CartView, error) {
	if err := l.UpdateQuantity(id, quantity); err != nil {
		return models.CartView{}, err
	}
	return s.View(l), nil
}

func (s *CartService) RemoveItem(l *ledger.Ledger, id string) (models.CartView, error) {
	if err := l.RemoveItem(id); err != nil {
		return models.CartView{}, err
	}
	return s.View(l), nil
}

func (s *CartService) Clear(l *ledger.Ledger) (models.CartView, error) {
	if err := l.Clear(); err != nil {
		return models.CartView{}, err
	}
	return s.View(l), nil
}

func BuildCartView(snap ledger.Snapshot, pricing ledger.Pricing) models.CartView {
	return models.CartView{
		Items:     snap.Items,
		Totals:    snap.Totals,
		Formatted: FormatTotals(snap.Totals, pricing),
		Empty:     len(snap.Items) == 0,
		Locked:    snap.Locked,
		Version:   snap.Version,
	}
}

func FormatTotals(t models.Totals, pricing ledger.Pricing) models.FormattedTotals {
	return models.FormattedTotals{
		Subtotal:         money.Format(t.Subtotal),
		ShippingFee:      money.FormatShipping(t.ShippingFee),
		Tax:              money.Format(t.Tax),
		Total:            money.Format(t.Total),
		FreeShippingHint: "Miễn phí vận chuyển cho đơn hàng trên " + money.Format(pricing.FreeShippingThreshold),
	}
}
