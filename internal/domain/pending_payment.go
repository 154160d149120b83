package domain

import "time"

type PendingPayment struct {
	ID            uint
	OrderID       *uint
	CustomerName  string
	CustomerPhone string
	TotalAmount   float64
	PaidAmount    float64
	PendingAmount float64
	Status        string
	DueDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// View-only statuses derived from the due date. Never written to storage.
const (
	PaymentStatusDueSoon = "due_soon"
	PaymentStatusOverdue = "overdue"
)

// DueSoonWindow is how far ahead of the due date a payment starts
// showing as due_soon.
const DueSoonWindow = 7 * 24 * time.Hour

func (p PendingPayment) Kind() string { return "pending_payment" }

// EffectiveStatus derives the view status from the stored status and the
// due date. paid and partial pass through; a stored pending payment is
// overdue once the due date is past and due_soon inside the window.
func (p PendingPayment) EffectiveStatus(now time.Time) string {
	if p.Status == PaymentStatusPaid || p.Status == PaymentStatusPartial {
		return p.Status
	}
	if p.DueDate.Before(now) {
		return PaymentStatusOverdue
	}
	if p.DueDate.Sub(now) <= DueSoonWindow {
		return PaymentStatusDueSoon
	}
	return PaymentStatusPending
}

func (p PendingPayment) SearchFields() []string {
	return []string{p.CustomerName, p.CustomerPhone}
}

func (p PendingPayment) CreatedTime() time.Time { return p.CreatedAt }

func (p PendingPayment) DueTime() (time.Time, bool) { return p.DueDate, true }

func (p PendingPayment) Amounts() map[string]float64 {
	return map[string]float64{
		"totalAmount":   p.TotalAmount,
		"paidAmount":    p.PaidAmount,
		"pendingAmount": p.PendingAmount,
	}
}
