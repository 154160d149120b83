package payment

import (
	"context"
	"database/sql"

	"mercadito/internal/domain"
)

type Service interface {
	ListPayments(ctx context.Context) ([]domain.PendingPayment, error)
	RecordPayment(ctx context.Context, id uint, amount float64) (*domain.PendingPayment, error)
	MarkPaid(ctx context.Context, id uint) (*domain.PendingPayment, error)
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.PendingPayment, error)
	FindAll(ctx context.Context) ([]domain.PendingPayment, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.PendingPayment, error)
	UpdateAmounts(ctx context.Context, tx *sql.Tx, id uint, paidAmount, pendingAmount float64, status string) error
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ChangeFeed interface {
	Changed(ctx context.Context, kind, entityID, action string)
}
