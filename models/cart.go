package models

// LineItem is one product's presence in a cart. Price is fixed at the moment
// the product was first added.
type LineItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"item_count"`
}

type FormattedTotals struct {
	Subtotal         string `json:"subtotal"`
	ShippingFee      string `json:"shipping_fee"`
	Tax              string `json:"tax"`
	Total            string `json:"total"`
	FreeShippingHint string `json:"free_shipping_hint"`
}

type CartView struct {
	Items     []LineItem      `json:"items"`
	Totals    Totals          `json:"totals"`
	Formatted FormattedTotals `json:"formatted"`
	Empty     bool            `json:"empty"`
	Locked    bool            `json:"locked"`
	Version   uint64          `json:"version"`
}
