package payment

import (
	"database/sql"

	"mercadito/internal/config"
	"mercadito/internal/feed"
	"mercadito/internal/payment/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, changeFeed *feed.Feed, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLPendingPaymentRepository(db)
	svc := NewService(db, repo, changeFeed, logger, cfg.Order.TxTimeout)
	return NewController(svc, logger)
}
