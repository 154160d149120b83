package dto

import "time"

type CreateCreditRequestRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	RequestedAmount float64 `json:"requestedAmount"`
	Reason          string  `json:"reason"`
}

type CreditRequestDTO struct {
	ID              uint      `json:"id"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	RequestedAmount float64   `json:"requestedAmount"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreditRequestListResponse struct {
	Requests []CreditRequestDTO `json:"requests"`
	Stats    map[string]float64 `json:"stats"`
}

// ApproveCreditResponse reports every record the approval workflow created.
type ApproveCreditResponse struct {
	TraceID   string    `json:"traceId"`
	RequestID uint      `json:"requestId"`
	OrderID   uint      `json:"orderId"`
	PaymentID uint      `json:"paymentId"`
	DueDate   time.Time `json:"dueDate"`
	Timestamp time.Time `json:"timestamp"`
}
