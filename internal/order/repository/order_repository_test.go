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

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertOrder(t *testing.T, db *sql.DB, repo *MySQLOrderRepository, order domain.Order) uint {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, order)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	return id
}

func TestOrderRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	id := insertOrder(t, db, repo, domain.Order{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "555-0101",
		Total:         120.50,
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCash,
	})

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, 120.50, order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Nil(t, order.Notes)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	_, err := repo.FindByID(context.Background(), 99999)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	id := insertOrder(t, db, repo, domain.Order{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "555-0101",
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCash,
	})

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), tx, id, domain.OrderStatusConfirmed))
	require.NoError(t, tx.Commit())

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpdateStatus(context.Background(), tx, 99999, domain.OrderStatusConfirmed)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderItemRepository_InsertAndFindByOrderID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	orderID := insertOrder(t, db, orderRepo, domain.Order{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "555-0101",
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCash,
	})

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = itemRepo.Insert(context.Background(), tx, domain.OrderItem{
		OrderID:     orderID,
		ProductID:   1,
		ProductName: "Frijol negro 1kg",
		Quantity:    2,
		UnitPrice:   32.50,
		Subtotal:    65.00,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	items, err := itemRepo.FindByOrderID(context.Background(), orderID)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Frijol negro 1kg", items[0].ProductName)
	assert.Equal(t, 65.00, items[0].Subtotal)
}
