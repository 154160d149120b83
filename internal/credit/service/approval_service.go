package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CreditRequestRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.CreditRequest, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type PendingPaymentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, payment domain.PendingPayment) (uint, error)
}

type StoreSettingsRepository interface {
	Find(ctx context.Context) (*domain.StoreSettings, error)
}

type ChangeFeed interface {
	Changed(ctx context.Context, kind, entityID, action string)
}

type ApprovalResult struct {
	RequestID uint
	OrderID   uint
	PaymentID uint
	DueDate   time.Time
}

// ApprovalService runs the approve-credit workflow: mark the request
// approved, create the credit order, and open the pending-payment record.
// The three writes commit or roll back together.
type ApprovalService struct {
	db             TransactionManager
	creditRepo     CreditRequestRepository
	orderRepo      OrderRepository
	paymentRepo    PendingPaymentRepository
	settingsRepo   StoreSettingsRepository
	feed           ChangeFeed
	logger         *zap.Logger
	txTimeout      time.Duration
	creditTermDays int
}

func NewApprovalService(
	db TransactionManager,
	creditRepo CreditRequestRepository,
	orderRepo OrderRepository,
	paymentRepo PendingPaymentRepository,
	settingsRepo StoreSettingsRepository,
	feed ChangeFeed,
	logger *zap.Logger,
	txTimeout time.Duration,
	creditTermDays int,
) *ApprovalService {
	return &ApprovalService{
		db:             db,
		creditRepo:     creditRepo,
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		settingsRepo:   settingsRepo,
		feed:           feed,
		logger:         logger,
		txTimeout:      txTimeout,
		creditTermDays: creditTermDays,
	}
}

func (s *ApprovalService) Approve(ctx context.Context, requestID uint) (*ApprovalResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// Re-check under lock; the pre-validation outside the transaction can
	// race a concurrent approval.
	request, err := s.creditRepo.FindByIDForUpdate(txCtx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.CreditStatusPending {
		return nil, apperrors.NewConflictError("credit request is not pending")
	}

	if err := s.creditRepo.UpdateStatus(txCtx, tx, requestID, domain.CreditStatusApproved); err != nil {
		return nil, err
	}

	notes := request.Reason
	orderID, err := s.orderRepo.Insert(txCtx, tx, domain.Order{
		CustomerName:  request.CustomerName,
		CustomerPhone: request.CustomerPhone,
		Total:         request.RequestedAmount,
		Status:        domain.OrderStatusConfirmed,
		PaymentMethod: domain.PaymentMethodCredit,
		Notes:         &notes,
	})
	if err != nil {
		return nil, err
	}

	dueDate := time.Now().AddDate(0, 0, s.termDays(txCtx))
	paymentID, err := s.paymentRepo.Insert(txCtx, tx, domain.PendingPayment{
		OrderID:       &orderID,
		CustomerName:  request.CustomerName,
		CustomerPhone: request.CustomerPhone,
		TotalAmount:   request.RequestedAmount,
		PaidAmount:    0,
		PendingAmount: request.RequestedAmount,
		Status:        domain.PaymentStatusPending,
		DueDate:       dueDate,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("requestId", requestID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("credit request approved",
		zap.Uint("requestId", requestID),
		zap.Uint("orderId", orderID),
		zap.Uint("paymentId", paymentID),
		zap.Float64("amount", request.RequestedAmount))

	s.feed.Changed(ctx, "credit_request", fmt.Sprintf("%d", requestID), "approved")
	s.feed.Changed(ctx, "order", fmt.Sprintf("%d", orderID), "created")
	s.feed.Changed(ctx, "pending_payment", fmt.Sprintf("%d", paymentID), "created")

	return &ApprovalResult{
		RequestID: requestID,
		OrderID:   orderID,
		PaymentID: paymentID,
		DueDate:   dueDate,
	}, nil
}

func (s *ApprovalService) Reject(ctx context.Context, requestID uint) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	request, err := s.creditRepo.FindByIDForUpdate(txCtx, tx, requestID)
	if err != nil {
		return err
	}
	if request.Status != domain.CreditStatusPending {
		return apperrors.NewConflictError("credit request is not pending")
	}

	if err := s.creditRepo.UpdateStatus(txCtx, tx, requestID, domain.CreditStatusRejected); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("requestId", requestID), zap.Error(err))
		return err
	}

	s.logger.Info("credit request rejected", zap.Uint("requestId", requestID))
	s.feed.Changed(ctx, "credit_request", fmt.Sprintf("%d", requestID), "rejected")

	return nil
}

func (s *ApprovalService) termDays(ctx context.Context) int {
	if settings, err := s.settingsRepo.Find(ctx); err == nil && settings.CreditTermDays > 0 {
		return settings.CreditTermDays
	}
	return s.creditTermDays
}
