package catalog

import (
	"context"

	"mercadito/internal/domain"
)

type Service interface {
	ListProducts(ctx context.Context, query ListQuery) (*ListResult, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	AdjustStock(ctx context.Context, id, stock int) (*domain.Product, error)
}

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Insert(ctx context.Context, product domain.Product) (int, error)
	Update(ctx context.Context, product domain.Product) error
	UpdateStock(ctx context.Context, id, stock int) error
}
