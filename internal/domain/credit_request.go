package domain

import "time"

type CreditRequest struct {
	ID              uint
	CustomerName    string
	CustomerPhone   string
	RequestedAmount float64
	Reason          string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	CreditStatusPending  = "pending"
	CreditStatusApproved = "approved"
	CreditStatusRejected = "rejected"
)

func (c CreditRequest) Kind() string { return "credit_request" }

func (c CreditRequest) EffectiveStatus(now time.Time) string { return c.Status }

func (c CreditRequest) SearchFields() []string {
	return []string{c.CustomerName, c.CustomerPhone, c.Reason}
}

func (c CreditRequest) CreatedTime() time.Time { return c.CreatedAt }

func (c CreditRequest) DueTime() (time.Time, bool) { return time.Time{}, false }

func (c CreditRequest) Amounts() map[string]float64 {
	return map[string]float64{"requestedAmount": c.RequestedAmount}
}
