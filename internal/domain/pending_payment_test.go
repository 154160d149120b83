package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingPayment_EffectiveStatus(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		stored   string
		dueDate  time.Time
		expected string
	}{
		{"past due date is overdue", PaymentStatusPending, now.Add(-10 * 24 * time.Hour), PaymentStatusOverdue},
		{"three days out is due soon", PaymentStatusPending, now.Add(3 * 24 * time.Hour), PaymentStatusDueSoon},
		{"thirty days out stays pending", PaymentStatusPending, now.Add(30 * 24 * time.Hour), PaymentStatusPending},
		{"paid passes through even when past due", PaymentStatusPaid, now.Add(-10 * 24 * time.Hour), PaymentStatusPaid},
		{"partial passes through even when past due", PaymentStatusPartial, now.Add(-10 * 24 * time.Hour), PaymentStatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment := PendingPayment{Status: tc.stored, DueDate: tc.dueDate}
			assert.Equal(t, tc.expected, payment.EffectiveStatus(now))
		})
	}
}

func TestPendingPayment_EffectiveStatusAdvancesWithClock(t *testing.T) {
	due := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payment := PendingPayment{Status: PaymentStatusPending, DueDate: due}

	assert.Equal(t, PaymentStatusPending, payment.EffectiveStatus(due.Add(-20*24*time.Hour)))
	assert.Equal(t, PaymentStatusDueSoon, payment.EffectiveStatus(due.Add(-5*24*time.Hour)))
	assert.Equal(t, PaymentStatusOverdue, payment.EffectiveStatus(due.Add(time.Hour)))
}

func TestPendingPayment_Amounts(t *testing.T) {
	payment := PendingPayment{TotalAmount: 200, PaidAmount: 50, PendingAmount: 150}

	amounts := payment.Amounts()
	assert.Equal(t, 200.0, amounts["totalAmount"])
	assert.Equal(t, 50.0, amounts["paidAmount"])
	assert.Equal(t, 150.0, amounts["pendingAmount"])
}

func TestPendingPayment_DueTime(t *testing.T) {
	due := time.Now().Add(48 * time.Hour)
	payment := PendingPayment{DueDate: due}

	got, ok := payment.DueTime()
	assert.True(t, ok)
	assert.Equal(t, due, got)
}
