package dto

import "time"

type PendingPaymentDTO struct {
	ID            uint      `json:"id"`
	OrderID       *uint     `json:"orderId,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	TotalAmount   float64   `json:"totalAmount"`
	PaidAmount    float64   `json:"paidAmount"`
	PendingAmount float64   `json:"pendingAmount"`
	Status        string    `json:"status"`
	// EffectiveStatus folds the due date in: overdue or due_soon for
	// stored pending payments, the stored status otherwise.
	EffectiveStatus string    `json:"effectiveStatus"`
	DueDate         time.Time `json:"dueDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

type PendingPaymentListResponse struct {
	Payments []PendingPaymentDTO `json:"payments"`
	Stats    map[string]float64  `json:"stats"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type RecordPaymentResponse struct {
	TraceID       string    `json:"traceId"`
	PaymentID     uint      `json:"paymentId"`
	PaidAmount    float64   `json:"paidAmount"`
	PendingAmount float64   `json:"pendingAmount"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}
