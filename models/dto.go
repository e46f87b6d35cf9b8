package models

type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity" form:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required"`
}

type ShippingInfo struct {
	FullName string `json:"full_name" form:"full_name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Phone    string `json:"phone" form:"phone" validate:"required"`
	Address  string `json:"address" form:"address" validate:"required"`
	City     string `json:"city" form:"city" validate:"required"`
	ZipCode  string `json:"zip_code" form:"zip_code" validate:"required"`
}

type PaymentInfo struct {
	CardNumber     string `json:"card_number" validate:"required"`
	ExpiryDate     string `json:"expiry_date" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	CardholderName string `json:"cardholder_name" validate:"required"`
}

type CheckoutRequest struct {
	Shipping ShippingInfo `json:"shipping"`
	Payment  PaymentInfo  `json:"payment"`
}

type CheckoutResponse struct {
	Order          *Order `json:"order"`
	FormattedTotal string `json:"formatted_total"`
}

type CheckoutStatus struct {
	Pending bool `json:"pending"`
}
