package dto

import "time"

type PlaceOrderRequest struct {
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         *string          `json:"notes,omitempty"`
	Items         []PlaceOrderItem `json:"items"`
}

type PlaceOrderItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type OrderItemDTO struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderDTO struct {
	ID            uint           `json:"id"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Items         []OrderItemDTO `json:"items,omitempty"`
	Total         float64        `json:"total"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"paymentMethod"`
	Notes         *string        `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type OrderListResponse struct {
	Orders []OrderDTO         `json:"orders"`
	Stats  map[string]float64 `json:"stats"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	// GeneratePayment asks the transition to delivered to open a
	// pending-payment record for the order total.
	GeneratePayment bool `json:"generatePayment,omitempty"`
}

type UpdateOrderStatusResponse struct {
	TraceID   string    `json:"traceId"`
	OrderID   uint      `json:"orderId"`
	Status    string    `json:"status"`
	PaymentID *uint     `json:"paymentId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
