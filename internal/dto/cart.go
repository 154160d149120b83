package dto

import "time"

type SetCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type CartDTO struct {
	SessionID string        `json:"sessionId"`
	Items     []CartItemDTO `json:"items"`
	Total     float64       `json:"total"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CheckoutRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         *string `json:"notes,omitempty"`
}
