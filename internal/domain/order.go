package domain

import "time"

type Order struct {
	ID            uint
	CustomerName  string
	CustomerPhone string
	Items         []OrderItem
	Total         float64
	Status        string
	PaymentMethod string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMethodCash           = "cash"
	PaymentMethodTransfer       = "transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodCredit         = "credit"
)

// orderTransitions lists the statuses an order may move to from each status.
// Delivered and cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func ValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

func (o Order) CanTransitionTo(status string) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// Record interface for the list projector.

func (o Order) Kind() string { return "order" }

func (o Order) EffectiveStatus(now time.Time) string { return o.Status }

func (o Order) SearchFields() []string {
	return []string{o.CustomerName, o.CustomerPhone}
}

func (o Order) CreatedTime() time.Time { return o.CreatedAt }

func (o Order) DueTime() (time.Time, bool) { return time.Time{}, false }

func (o Order) Amounts() map[string]float64 {
	return map[string]float64{"totalRevenue": o.Total}
}
