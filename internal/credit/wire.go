package credit

import (
	"database/sql"

	"mercadito/internal/config"
	"mercadito/internal/credit/controller"
	creditrepo "mercadito/internal/credit/repository"
	"mercadito/internal/credit/service"
	"mercadito/internal/credit/usecase"
	"mercadito/internal/feed"
	orderrepo "mercadito/internal/order/repository"
	paymentrepo "mercadito/internal/payment/repository"
	settingsrepo "mercadito/internal/settings/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, changeFeed *feed.Feed, logger *zap.Logger) *controller.CreditController {
	creditRepo := creditrepo.NewMySQLCreditRequestRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	paymentRepo := paymentrepo.NewMySQLPendingPaymentRepository(db)
	settingsRepo := settingsrepo.NewMySQLStoreSettingsRepository(db)

	approvalSvc := service.NewApprovalService(
		db,
		creditRepo,
		orderRepo,
		paymentRepo,
		settingsRepo,
		changeFeed,
		logger,
		cfg.Order.TxTimeout,
		cfg.Credit.TermDays,
	)

	uc := usecase.NewApproveCreditUseCase(
		creditRepo,
		approvalSvc,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewCreditController(creditRepo, uc, changeFeed, logger)
}
