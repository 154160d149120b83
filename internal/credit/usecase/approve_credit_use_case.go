package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"mercadito/internal/credit/service"
	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"
)

type CreditRequestRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.CreditRequest, error)
}

type ApprovalService interface {
	Approve(ctx context.Context, requestID uint) (*service.ApprovalResult, error)
	Reject(ctx context.Context, requestID uint) error
}

type ApproveCreditUseCase struct {
	creditRepo       CreditRequestRepository
	approvalSvc      ApprovalService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewApproveCreditUseCase(
	creditRepo CreditRequestRepository,
	approvalSvc ApprovalService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *ApproveCreditUseCase {
	return &ApproveCreditUseCase{
		creditRepo:       creditRepo,
		approvalSvc:      approvalSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ApproveCreditUseCase) Approve(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
	if err := uc.preValidate(ctx, requestID); err != nil {
		return nil, err
	}

	return uc.approveWithRetry(ctx, requestID)
}

func (uc *ApproveCreditUseCase) Reject(ctx context.Context, requestID uint) error {
	if err := uc.preValidate(ctx, requestID); err != nil {
		return err
	}

	return uc.approvalSvc.Reject(ctx, requestID)
}

func (uc *ApproveCreditUseCase) preValidate(ctx context.Context, requestID uint) error {
	request, err := uc.creditRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.Status != domain.CreditStatusPending {
		return apperrors.NewConflictError("credit request is not pending")
	}

	return nil
}

func (uc *ApproveCreditUseCase) approveWithRetry(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		result, err := uc.approvalSvc.Approve(ctx, requestID)
		if err == nil {
			return result, nil
		}

		if isDeadlockError(err) {
			if attempt < uc.maxRetryAttempts {
				backoff := backoffs[(attempt-1)%len(backoffs)]
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", uc.maxRetryAttempts),
					zap.Uint("requestId", requestID))
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
