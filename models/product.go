package models

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ProductDetail struct {
	Product
	FormattedPrice string          `json:"formatted_price"`
	Features       []string        `json:"features"`
	Specifications []Specification `json:"specifications"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	InStock        bool            `json:"in_stock"`
}
