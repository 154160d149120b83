package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"mercadito/internal/credit/service"
	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"
)

func createDeadlockError() error {
	return &mysql.MySQLError{Number: 1213}
}

func newTestApproveCreditUseCase(creditRepo CreditRequestRepository, approvalSvc ApprovalService) *ApproveCreditUseCase {
	return NewApproveCreditUseCase(creditRepo, approvalSvc, zap.NewNop(), 3)
}

type mockCreditRequestRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.CreditRequest, error)
}

func (m *mockCreditRequestRepository) FindByID(ctx context.Context, id uint) (*domain.CreditRequest, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockApprovalService struct {
	ApproveFunc func(ctx context.Context, requestID uint) (*service.ApprovalResult, error)
	RejectFunc  func(ctx context.Context, requestID uint) error
}

func (m *mockApprovalService) Approve(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
	return m.ApproveFunc(ctx, requestID)
}

func (m *mockApprovalService) Reject(ctx context.Context, requestID uint) error {
	return m.RejectFunc(ctx, requestID)
}

func pendingRequest(id uint) *domain.CreditRequest {
	return &domain.CreditRequest{
		ID:              id,
		CustomerName:    "Maria Lopez",
		CustomerPhone:   "555-0101",
		RequestedAmount: 500,
		Status:          domain.CreditStatusPending,
	}
}

func TestApprove_RequestNotFound(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			return nil, apperrors.NewNotFoundError("credit request not found")
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, &mockApprovalService{})

	_, err := uc.Approve(ctx, 1)

	if err == nil {
		t.Errorf("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestApprove_RequestNotPending(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			req := pendingRequest(id)
			req.Status = domain.CreditStatusApproved
			return req, nil
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, &mockApprovalService{})

	_, err := uc.Approve(ctx, 1)

	if err == nil {
		t.Errorf("expected error, got nil")
	}

	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected ConflictError, got %T", err)
	}
}

func TestApprove_Success(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			return pendingRequest(id), nil
		},
	}

	due := time.Now().Add(30 * 24 * time.Hour)
	approvalSvc := &mockApprovalService{
		ApproveFunc: func(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
			return &service.ApprovalResult{
				RequestID: requestID,
				OrderID:   7,
				PaymentID: 9,
				DueDate:   due,
			}, nil
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, approvalSvc)

	result, err := uc.Approve(ctx, 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.OrderID != 7 || result.PaymentID != 9 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestApprove_RetriesOnDeadlock(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			return pendingRequest(id), nil
		},
	}

	attempts := 0
	approvalSvc := &mockApprovalService{
		ApproveFunc: func(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
			attempts++
			if attempts < 2 {
				return nil, createDeadlockError()
			}
			return &service.ApprovalResult{RequestID: requestID}, nil
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, approvalSvc)

	_, err := uc.Approve(ctx, 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestApprove_DeadlockExhaustsRetries(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			return pendingRequest(id), nil
		},
	}

	approvalSvc := &mockApprovalService{
		ApproveFunc: func(ctx context.Context, requestID uint) (*service.ApprovalResult, error) {
			return nil, createDeadlockError()
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, approvalSvc)

	_, err := uc.Approve(ctx, 1)

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsDeadlockError(err); !ok {
		t.Errorf("expected DeadlockError, got %T", err)
	}
}

func TestReject_RequestNotPending(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			req := pendingRequest(id)
			req.Status = domain.CreditStatusRejected
			return req, nil
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, &mockApprovalService{})

	err := uc.Reject(ctx, 1)

	if err == nil {
		t.Errorf("expected error, got nil")
	}

	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected ConflictError, got %T", err)
	}
}

func TestReject_Success(t *testing.T) {
	ctx := context.Background()

	creditRepo := &mockCreditRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.CreditRequest, error) {
			return pendingRequest(id), nil
		},
	}

	rejected := false
	approvalSvc := &mockApprovalService{
		RejectFunc: func(ctx context.Context, requestID uint) error {
			rejected = true
			return nil
		},
	}

	uc := newTestApproveCreditUseCase(creditRepo, approvalSvc)

	if err := uc.Reject(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rejected {
		t.Errorf("expected reject to be called")
	}
}
