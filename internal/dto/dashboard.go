package dto

import "time"

// DashboardEntryDTO is a compact row in the combined activity view. Kind
// tells the client which sub-collection the entry came from.
type DashboardEntryDTO struct {
	Kind          string     `json:"kind"`
	ID            uint       `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	Status        string     `json:"status"`
	Amount        float64    `json:"amount"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type DashboardResponse struct {
	Entries []DashboardEntryDTO `json:"entries"`
	Stats   map[string]float64  `json:"stats"`
}
