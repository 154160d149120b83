package domain

import "time"

type StoreSettings struct {
	ID              int
	StoreName       string
	Currency        string
	CreditTermDays  int
	HasStockControl bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
