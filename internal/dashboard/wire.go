package dashboard

import (
	"database/sql"

	creditrepo "mercadito/internal/credit/repository"
	orderrepo "mercadito/internal/order/repository"
	paymentrepo "mercadito/internal/payment/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	return NewController(
		orderrepo.NewMySQLOrderRepository(db),
		creditrepo.NewMySQLCreditRequestRepository(db),
		paymentrepo.NewMySQLPendingPaymentRepository(db),
		logger,
	)
}
