package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mercadito/internal/credit/service"
	"mercadito/internal/domain"
	"mercadito/internal/dto"
	apperrors "mercadito/internal/errors"
	"mercadito/internal/projector"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreditRequestRepository interface {
	FindAll(ctx context.Context) ([]domain.CreditRequest, error)
	FindByID(ctx context.Context, id uint) (*domain.CreditRequest, error)
	Insert(ctx context.Context, request domain.CreditRequest) (uint, error)
}

type ApproveUseCase interface {
	Approve(ctx context.Context, requestID uint) (*service.ApprovalResult, error)
	Reject(ctx context.Context, requestID uint) error
}

type ChangeFeed interface {
	Changed(ctx context.Context, kind, entityID, action string)
}

type CreditController struct {
	repo    CreditRequestRepository
	useCase ApproveUseCase
	feed    ChangeFeed
	logger  *zap.Logger
}

func NewCreditController(repo CreditRequestRepository, useCase ApproveUseCase, feed ChangeFeed, logger *zap.Logger) *CreditController {
	return &CreditController{
		repo:    repo,
		useCase: useCase,
		feed:    feed,
		logger:  logger,
	}
}

func validCreditStatus(status string) bool {
	switch status {
	case domain.CreditStatusPending, domain.CreditStatusApproved, domain.CreditStatusRejected:
		return true
	}
	return false
}

func (c *CreditController) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = projector.All
	}

	if status != projector.All && !validCreditStatus(status) {
		c.writeValidationError(w, "unknown status filter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be all, pending, approved or rejected",
		})
		return
	}

	requests, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.logger.Error("list credit requests failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	records := make([]projector.Record, len(requests))
	for i, request := range requests {
		records[i] = request
	}
	result := projector.Project(records, projector.Query{
		Text:   search,
		Status: status,
		Type:   projector.All,
		Sort:   projector.SortCreatedDesc,
	}, time.Now())

	visible := make([]dto.CreditRequestDTO, 0, len(result.Visible))
	for _, record := range result.Visible {
		visible = append(visible, toCreditRequestDTO(record.(domain.CreditRequest)))
	}

	c.writeJSON(w, http.StatusOK, dto.CreditRequestListResponse{
		Requests: visible,
		Stats:    result.Stats,
	})
}

func (c *CreditController) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCreditRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	id, err := c.repo.Insert(r.Context(), domain.CreditRequest{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		RequestedAmount: req.RequestedAmount,
		Reason:          req.Reason,
		Status:          domain.CreditStatusPending,
	})
	if err != nil {
		c.logger.Error("create credit request failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.feed.Changed(r.Context(), "credit_request", strconv.FormatUint(uint64(id), 10), "created")

	created, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.logger.Error("fetch created credit request failed", zap.Uint("requestId", id), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusCreated, toCreditRequestDTO(*created))
}

func (c *CreditController) HandleApprove(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.parseRequestID(w, r)
	if !ok {
		return
	}

	result, err := c.useCase.Approve(r.Context(), id)
	if err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ApproveCreditResponse{
		TraceID:   traceID,
		RequestID: result.RequestID,
		OrderID:   result.OrderID,
		PaymentID: result.PaymentID,
		DueDate:   result.DueDate,
		Timestamp: time.Now().UTC(),
	})
}

func (c *CreditController) HandleReject(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.parseRequestID(w, r)
	if !ok {
		return
	}

	if err := c.useCase.Reject(r.Context(), id); err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"traceId":   traceID,
		"requestId": id,
		"status":    domain.CreditStatusRejected,
	})
}

func (c *CreditController) parseRequestID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid credit request id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func validateCreateRequest(req dto.CreateCreditRequestRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}

	if req.CustomerPhone == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerPhone",
			Message: "customerPhone is required",
		})
	}

	if req.RequestedAmount <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "requestedAmount",
			Message: "requestedAmount must be positive",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toCreditRequestDTO(request domain.CreditRequest) dto.CreditRequestDTO {
	return dto.CreditRequestDTO{
		ID:              request.ID,
		CustomerName:    request.CustomerName,
		CustomerPhone:   request.CustomerPhone,
		RequestedAmount: request.RequestedAmount,
		Reason:          request.Reason,
		Status:          request.Status,
		CreatedAt:       request.CreatedAt,
	}
}

func (c *CreditController) handleWorkflowError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "DEADLOCK",
			"message": err.Error(),
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeInternalError(w)
}

func (c *CreditController) writeInternalError(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *CreditController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CreditController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
