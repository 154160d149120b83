package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadito/internal/testutil"
)

func TestStore_GetReturnsEmptyCartWhenMissing(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer testutil.CleanupTestRedis(t, rdb)

	store := NewStore(rdb, time.Hour)

	cart, err := store.Get(context.Background(), "session-missing")
	require.NoError(t, err)

	assert.Equal(t, "session-missing", cart.SessionID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total())
}

func TestStore_SetItemAddsAndUpdatesLines(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer testutil.CleanupTestRedis(t, rdb)

	store := NewStore(rdb, time.Hour)
	ctx := context.Background()

	cart, err := store.SetItem(ctx, "session-1", Item{
		ProductID:   1,
		ProductName: "Frijol negro 1kg",
		UnitPrice:   32.50,
		Quantity:    2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 65.0, cart.Total())

	cart, err = store.SetItem(ctx, "session-1", Item{
		ProductID:   1,
		ProductName: "Frijol negro 1kg",
		UnitPrice:   32.50,
		Quantity:    3,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Carts survive a round trip through Redis.
	reloaded, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, reloaded.Items)
}

func TestStore_SetItemZeroQuantityRemovesLine(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer testutil.CleanupTestRedis(t, rdb)

	store := NewStore(rdb, time.Hour)
	ctx := context.Background()

	_, err := store.SetItem(ctx, "session-2", Item{ProductID: 1, ProductName: "Arroz", UnitPrice: 20, Quantity: 2})
	require.NoError(t, err)
	_, err = store.SetItem(ctx, "session-2", Item{ProductID: 2, ProductName: "Azucar", UnitPrice: 25, Quantity: 1})
	require.NoError(t, err)

	cart, err := store.SetItem(ctx, "session-2", Item{ProductID: 1, Quantity: 0})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)
}

func TestStore_Clear(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer testutil.CleanupTestRedis(t, rdb)

	store := NewStore(rdb, time.Hour)
	ctx := context.Background()

	_, err := store.SetItem(ctx, "session-3", Item{ProductID: 1, ProductName: "Arroz", UnitPrice: 20, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "session-3"))

	cart, err := store.Get(ctx, "session-3")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCart_Total(t *testing.T) {
	cart := Cart{Items: []Item{
		{ProductID: 1, UnitPrice: 10.50, Quantity: 2},
		{ProductID: 2, UnitPrice: 5, Quantity: 3},
	}}

	assert.Equal(t, 36.0, cart.Total())
}
