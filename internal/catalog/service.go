package catalog

import (
	"context"
	"strings"

	"mercadito/internal/domain"
)

type ListQuery struct {
	Search       string
	Category     string
	LowStockOnly bool
}

type CatalogStats struct {
	TotalProducts  int
	LowStockCount  int
	InventoryValue float64
}

// ListResult carries the filtered products plus statistics over the whole
// catalog; filters never change the stats.
type ListResult struct {
	Products []domain.Product
	Stats    CatalogStats
}

type catalogService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListProducts(ctx context.Context, query ListQuery) (*ListResult, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := CatalogStats{TotalProducts: len(all)}
	for _, p := range all {
		if p.LowStock() {
			stats.LowStockCount++
		}
		stats.InventoryValue += p.BasePrice * float64(p.Stock)
	}

	visible := make([]domain.Product, 0, len(all))
	needle := strings.ToLower(query.Search)
	for _, p := range all {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if query.LowStockOnly && !p.LowStock() {
			continue
		}
		visible = append(visible, p)
	}

	return &ListResult{Products: visible, Stats: stats}, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.IsActive = true

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, product.ID)
}

func (s *catalogService) AdjustStock(ctx context.Context, id, stock int) (*domain.Product, error) {
	if err := s.repo.UpdateStock(ctx, id, stock); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
