package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mercadito/internal/infrastructure/redisx"
)

type Item struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

type Cart struct {
	SessionID string    `json:"sessionId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Store keeps session carts as JSON documents in Redis. Redis is the only
// cart state; nothing is held in server memory between requests.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Get returns the cart for sessionID, or an empty cart when none is stored.
func (s *Store) Get(ctx context.Context, sessionID string) (*Cart, error) {
	key := fmt.Sprintf(redisx.KeyCart, sessionID)

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return &Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}

	return &cart, nil
}

// SetItem sets the quantity for a product, adding or removing the line as
// needed. Quantity zero removes the line.
func (s *Store) SetItem(ctx context.Context, sessionID string, item Item) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	updated := cart.Items[:0]
	for _, existing := range cart.Items {
		if existing.ProductID != item.ProductID {
			updated = append(updated, existing)
		}
	}
	if item.Quantity > 0 {
		updated = append(updated, item)
	}
	cart.Items = updated
	cart.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(redisx.KeyCart, sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}

	key := fmt.Sprintf(redisx.KeyCart, cart.SessionID)
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing cart: %w", err)
	}

	return nil
}
