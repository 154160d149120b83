package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadito/internal/domain"
	"mercadito/internal/errors"
	"mercadito/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductRepository_FindAll_SkipsInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO Product (name, category, packaging, basePrice, stock, lowStockAlert, isActive)
		VALUES ('Frijol negro 1kg', 'granos', 'bolsa', 32.50, 40, 10, 1),
		       ('Arroz 1kg', 'granos', 'bolsa', 28.00, 5, 10, 1),
		       ('Descontinuado', 'otros', 'pieza', 10.00, 0, 0, 0)
	`)
	require.NoError(t, err)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	// Sorted by name.
	assert.Equal(t, "Arroz 1kg", products[0].Name)
	assert.Equal(t, "Frijol negro 1kg", products[1].Name)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := repo.FindByID(context.Background(), 99999)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{
		Name:          "Aceite 1L",
		Category:      "abarrotes",
		Packaging:     "botella",
		BasePrice:     45.00,
		Stock:         24,
		LowStockAlert: 6,
		IsActive:      true,
	})
	require.NoError(t, err)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Aceite 1L", product.Name)
	assert.Equal(t, 45.00, product.BasePrice)
	assert.Equal(t, 24, product.Stock)
	assert.True(t, product.IsActive)
}

func TestProductRepository_FindByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	id1, err := repo.Insert(context.Background(), domain.Product{Name: "P1", BasePrice: 10, IsActive: true})
	require.NoError(t, err)
	id2, err := repo.Insert(context.Background(), domain.Product{Name: "P2", BasePrice: 20, IsActive: true})
	require.NoError(t, err)

	products, err := repo.FindByIDs(context.Background(), []int{id1, id2})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.FindByIDs(context.Background(), []int{})
	require.NoError(t, err)
	assert.Nil(t, products)
}

func TestProductRepository_DecrementStock_ClampsAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{Name: "P1", BasePrice: 10, Stock: 3, IsActive: true})
	require.NoError(t, err)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(context.Background(), tx, id, 10))
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}
