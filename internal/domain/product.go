package domain

import "time"

type Product struct {
	ID            int
	Name          string
	Category      string
	Packaging     string
	BasePrice     float64
	Stock         int
	LowStockAlert int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) LowStock() bool {
	return p.Stock <= p.LowStockAlert
}
