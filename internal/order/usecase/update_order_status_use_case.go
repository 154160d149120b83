package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type StatusUpdateService interface {
	UpdateStatus(ctx context.Context, order *domain.Order, newStatus string, generatePayment bool) (*uint, error)
}

type UpdateOrderStatusUseCase struct {
	orderRepo        OrderRepository
	statusSvc        StatusUpdateService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewUpdateOrderStatusUseCase(
	orderRepo OrderRepository,
	statusSvc StatusUpdateService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo:        orderRepo,
		statusSvc:        statusSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *UpdateOrderStatusUseCase) UpdateStatus(ctx context.Context, orderID uint, newStatus string, generatePayment bool) (*uint, error) {
	if !domain.ValidOrderStatus(newStatus) {
		msg := fmt.Sprintf("unknown status %q", newStatus)
		return nil, apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "status",
			Message: msg,
		})
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(newStatus) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("order cannot move from %s to %s", order.Status, newStatus))
	}

	if generatePayment && newStatus != domain.OrderStatusDelivered {
		return nil, apperrors.NewValidationError("generatePayment only applies to the delivered transition",
			apperrors.ValidationDetail{
				Field:   "generatePayment",
				Message: "generatePayment requires status delivered",
			})
	}

	return uc.updateWithRetry(ctx, order, newStatus, generatePayment)
}

func (uc *UpdateOrderStatusUseCase) updateWithRetry(ctx context.Context, order *domain.Order, newStatus string, generatePayment bool) (*uint, error) {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		paymentID, err := uc.statusSvc.UpdateStatus(ctx, order, newStatus, generatePayment)
		if err == nil {
			return paymentID, nil
		}

		if isDeadlockError(err) {
			if attempt < uc.maxRetryAttempts {
				backoff := backoffs[(attempt-1)%len(backoffs)]
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", uc.maxRetryAttempts),
					zap.Uint("orderId", order.ID))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
