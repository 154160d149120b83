package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Now()
	notes := "leave at the door"

	order := Order{
		ID:            1,
		CustomerName:  "Maria Lopez",
		CustomerPhone: "555-0101",
		Total:         99.99,
		Status:        OrderStatusPending,
		PaymentMethod: PaymentMethodCash,
		Notes:         &notes,
		CreatedAt:     createdAt,
	}

	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, "555-0101", order.CustomerPhone)
	assert.Equal(t, 99.99, order.Total)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, &notes, order.Notes)
	assert.Equal(t, createdAt, order.CreatedAt)
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending)
	assert.Equal(t, "confirmed", OrderStatusConfirmed)
	assert.Equal(t, "processing", OrderStatusProcessing)
	assert.Equal(t, "delivered", OrderStatusDelivered)
	assert.Equal(t, "cancelled", OrderStatusCancelled)
}

func TestOrder_Transitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		order := Order{Status: tc.from}
		assert.Equal(t, tc.allowed, order.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusProcessing))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestOrder_RecordAmounts(t *testing.T) {
	order := Order{Total: 425.0, Status: OrderStatusPending}

	assert.Equal(t, "order", order.Kind())
	assert.Equal(t, OrderStatusPending, order.EffectiveStatus(time.Now()))
	assert.Equal(t, map[string]float64{"totalRevenue": 425.0}, order.Amounts())

	_, hasDue := order.DueTime()
	assert.False(t, hasDue)
}
