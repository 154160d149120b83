package cart

import (
	"database/sql"

	"mercadito/internal/catalog/repository"
	"mercadito/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, rdb *redis.Client, orders OrderPlacer, logger *zap.Logger) *Controller {
	store := NewStore(rdb, cfg.Cart.TTL)
	products := repository.NewMySQLProductRepository(db)
	return NewController(store, products, orders, logger)
}
