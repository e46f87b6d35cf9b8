package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID          uuid.UUID    `json:"id"`
	OrderNumber string       `json:"order_number"`
	SessionID   string       `json:"-"`
	Items       []LineItem   `json:"items"`
	Totals      Totals       `json:"totals"`
	Shipping    ShippingInfo `json:"shipping"`
	CardLast4   string       `json:"card_last4"`
	CreatedAt   time.Time    `json:"created_at"`
}
