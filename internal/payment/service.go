package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"

	"go.uber.org/zap"
)

type paymentService struct {
	db        TransactionManager
	repo      Repository
	feed      ChangeFeed
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewService(db TransactionManager, repo Repository, feed ChangeFeed, logger *zap.Logger, txTimeout time.Duration) Service {
	return &paymentService{
		db:        db,
		repo:      repo,
		feed:      feed,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.PendingPayment, error) {
	return s.repo.FindAll(ctx)
}

// RecordPayment applies a partial or full payment. Amounts are written
// together so pendingAmount = totalAmount - paidAmount after every write;
// the status reaches paid exactly when the pending amount hits zero.
func (s *paymentService) RecordPayment(ctx context.Context, id uint, amount float64) (*domain.PendingPayment, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}

	return s.applyPayment(ctx, id, func(p *domain.PendingPayment) (float64, error) {
		if amount > p.PendingAmount {
			msg := fmt.Sprintf("amount %.2f exceeds pending balance %.2f", amount, p.PendingAmount)
			return 0, apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   "amount",
				Message: msg,
			})
		}
		return amount, nil
	})
}

// MarkPaid settles the outstanding balance in one step.
func (s *paymentService) MarkPaid(ctx context.Context, id uint) (*domain.PendingPayment, error) {
	return s.applyPayment(ctx, id, func(p *domain.PendingPayment) (float64, error) {
		return p.PendingAmount, nil
	})
}

func (s *paymentService) applyPayment(ctx context.Context, id uint, amountFor func(*domain.PendingPayment) (float64, error)) (*domain.PendingPayment, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	payment, err := s.repo.FindByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentStatusPaid {
		return nil, apperrors.NewConflictError("payment is already settled")
	}

	amount, err := amountFor(payment)
	if err != nil {
		return nil, err
	}

	newPaid := roundCents(payment.PaidAmount + amount)
	newPending := roundCents(payment.TotalAmount - newPaid)
	status := domain.PaymentStatusPartial
	if newPending <= 0 {
		newPending = 0
		status = domain.PaymentStatusPaid
	}

	if err := s.repo.UpdateAmounts(txCtx, tx, id, newPaid, newPending, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("paymentId", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Uint("paymentId", id),
		zap.Float64("amount", amount),
		zap.Float64("pendingAmount", newPending),
		zap.String("status", status))
	s.feed.Changed(ctx, "pending_payment", fmt.Sprintf("%d", id), "payment_recorded")

	return s.repo.FindByID(ctx, id)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
