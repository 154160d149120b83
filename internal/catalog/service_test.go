package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadito/internal/domain"
)

type mockRepository struct {
	FindAllFunc     func(ctx context.Context) ([]domain.Product, error)
	FindByIDFunc    func(ctx context.Context, id int) (*domain.Product, error)
	InsertFunc      func(ctx context.Context, product domain.Product) (int, error)
	UpdateFunc      func(ctx context.Context, product domain.Product) error
	UpdateStockFunc func(ctx context.Context, id, stock int) error
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) Insert(ctx context.Context, product domain.Product) (int, error) {
	return m.InsertFunc(ctx, product)
}

func (m *mockRepository) Update(ctx context.Context, product domain.Product) error {
	return m.UpdateFunc(ctx, product)
}

func (m *mockRepository) UpdateStock(ctx context.Context, id, stock int) error {
	return m.UpdateStockFunc(ctx, id, stock)
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Frijol negro 1kg", Category: "granos", BasePrice: 32.50, Stock: 40, LowStockAlert: 10},
		{ID: 2, Name: "Arroz 1kg", Category: "granos", BasePrice: 28, Stock: 5, LowStockAlert: 10},
		{ID: 3, Name: "Jabon de barra", Category: "limpieza", BasePrice: 15, Stock: 80, LowStockAlert: 20},
	}
}

func TestListProducts_StatsCoverWholeCatalog(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return sampleCatalog(), nil
		},
	}
	svc := NewService(repo)

	result, err := svc.ListProducts(context.Background(), ListQuery{Search: "frijol"})
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "Frijol negro 1kg", result.Products[0].Name)

	// Stats ignore the search filter.
	assert.Equal(t, 3, result.Stats.TotalProducts)
	assert.Equal(t, 1, result.Stats.LowStockCount)
	assert.Equal(t, 32.50*40+28*5+15*80, result.Stats.InventoryValue)
}

func TestListProducts_SearchMatchesCategory(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return sampleCatalog(), nil
		},
	}
	svc := NewService(repo)

	result, err := svc.ListProducts(context.Background(), ListQuery{Search: "GRANOS"})
	require.NoError(t, err)

	assert.Len(t, result.Products, 2)
}

func TestListProducts_LowStockOnly(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return sampleCatalog(), nil
		},
	}
	svc := NewService(repo)

	result, err := svc.ListProducts(context.Background(), ListQuery{LowStockOnly: true})
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, 2, result.Products[0].ID)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return sampleCatalog(), nil
		},
	}
	svc := NewService(repo)

	result, err := svc.ListProducts(context.Background(), ListQuery{Category: "limpieza"})
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, 3, result.Products[0].ID)
}

func TestCreateProduct_ActivatesAndReloads(t *testing.T) {
	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, product domain.Product) (int, error) {
			inserted = product
			return 9, nil
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			assert.Equal(t, 9, id)
			return &domain.Product{ID: id, Name: inserted.Name, IsActive: true}, nil
		},
	}
	svc := NewService(repo)

	product, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Aceite 1L"})
	require.NoError(t, err)

	assert.True(t, inserted.IsActive)
	assert.Equal(t, 9, product.ID)
}

func TestAdjustStock_Reloads(t *testing.T) {
	repo := &mockRepository{
		UpdateStockFunc: func(ctx context.Context, id, stock int) error {
			assert.Equal(t, 2, id)
			assert.Equal(t, 50, stock)
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Stock: 50}, nil
		},
	}
	svc := NewService(repo)

	product, err := svc.AdjustStock(context.Background(), 2, 50)
	require.NoError(t, err)

	assert.Equal(t, 50, product.Stock)
}
