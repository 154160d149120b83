package catalog

type ProductDTO struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Packaging     string  `json:"packaging"`
	BasePrice     float64 `json:"basePrice"`
	Stock         int     `json:"stock"`
	LowStockAlert int     `json:"lowStockAlert"`
	LowStock      bool    `json:"lowStock"`
	IsActive      bool    `json:"isActive"`
}

type CatalogStatsDTO struct {
	TotalProducts  int     `json:"totalProducts"`
	LowStockCount  int     `json:"lowStockCount"`
	InventoryValue float64 `json:"inventoryValue"`
}

type ListProductsResponse struct {
	Products []ProductDTO    `json:"products"`
	Stats    CatalogStatsDTO `json:"stats"`
}

type ProductRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Packaging     string  `json:"packaging"`
	BasePrice     float64 `json:"basePrice"`
	Stock         int     `json:"stock"`
	LowStockAlert int     `json:"lowStockAlert"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type AdjustStockRequest struct {
	Stock int `json:"stock"`
}
