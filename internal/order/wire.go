package order

import (
	"database/sql"

	catalogrepo "mercadito/internal/catalog/repository"
	"mercadito/internal/config"
	"mercadito/internal/feed"
	"mercadito/internal/order/controller"
	orderrepo "mercadito/internal/order/repository"
	"mercadito/internal/order/service"
	"mercadito/internal/order/usecase"
	paymentrepo "mercadito/internal/payment/repository"
	settingsrepo "mercadito/internal/settings/repository"

	"go.uber.org/zap"
)

// NewModule wires the order module and returns the HTTP controller together
// with the service so other modules (cart checkout) can place orders.
func NewModule(db *sql.DB, cfg *config.Config, changeFeed *feed.Feed, logger *zap.Logger) (*controller.OrdersController, *service.OrderService) {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productRepo := catalogrepo.NewMySQLProductRepository(db)
	paymentRepo := paymentrepo.NewMySQLPendingPaymentRepository(db)
	settingsRepo := settingsrepo.NewMySQLStoreSettingsRepository(db)

	svc := service.NewOrderService(
		db,
		orderRepo,
		itemRepo,
		productRepo,
		paymentRepo,
		settingsRepo,
		changeFeed,
		logger,
		cfg.Order.TxTimeout,
		cfg.Credit.TermDays,
	)

	updateStatus := usecase.NewUpdateOrderStatusUseCase(
		orderRepo,
		svc,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewOrdersController(svc, updateStatus, changeFeed, logger), svc
}
