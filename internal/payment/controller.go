package payment

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mercadito/internal/domain"
	"mercadito/internal/dto"
	apperrors "mercadito/internal/errors"
	"mercadito/internal/projector"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func validPaymentStatusFilter(status string) bool {
	switch status {
	case domain.PaymentStatusPending, domain.PaymentStatusPartial, domain.PaymentStatusPaid,
		domain.PaymentStatusDueSoon, domain.PaymentStatusOverdue:
		return true
	}
	return false
}

func (c *Controller) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = projector.All
	}

	if status != projector.All && !validPaymentStatusFilter(status) {
		c.writeValidationError(w, "unknown status filter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be all, pending, partial, paid, due_soon or overdue",
		})
		return
	}

	payments, err := c.service.ListPayments(r.Context())
	if err != nil {
		c.logger.Error("list pending payments failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	now := time.Now()
	records := make([]projector.Record, len(payments))
	for i, payment := range payments {
		records[i] = payment
	}
	result := projector.Project(records, projector.Query{
		Text:   search,
		Status: status,
		Type:   projector.All,
		Sort:   projector.SortDueDateAsc,
	}, now)

	visible := make([]dto.PendingPaymentDTO, 0, len(result.Visible))
	for _, record := range result.Visible {
		visible = append(visible, toPendingPaymentDTO(record.(domain.PendingPayment), now))
	}

	c.writeJSON(w, http.StatusOK, dto.PendingPaymentListResponse{
		Payments: visible,
		Stats:    result.Stats,
	})
}

func (c *Controller) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.parsePaymentID(w, r)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	payment, err := c.service.RecordPayment(r.Context(), id, req.Amount)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.RecordPaymentResponse{
		TraceID:       traceID,
		PaymentID:     payment.ID,
		PaidAmount:    payment.PaidAmount,
		PendingAmount: payment.PendingAmount,
		Status:        payment.Status,
		Timestamp:     time.Now().UTC(),
	})
}

func (c *Controller) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.parsePaymentID(w, r)
	if !ok {
		return
	}

	payment, err := c.service.MarkPaid(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.RecordPaymentResponse{
		TraceID:       traceID,
		PaymentID:     payment.ID,
		PaidAmount:    payment.PaidAmount,
		PendingAmount: payment.PendingAmount,
		Status:        payment.Status,
		Timestamp:     time.Now().UTC(),
	})
}

func (c *Controller) parsePaymentID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid payment id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func toPendingPaymentDTO(payment domain.PendingPayment, now time.Time) dto.PendingPaymentDTO {
	return dto.PendingPaymentDTO{
		ID:              payment.ID,
		OrderID:         payment.OrderID,
		CustomerName:    payment.CustomerName,
		CustomerPhone:   payment.CustomerPhone,
		TotalAmount:     payment.TotalAmount,
		PaidAmount:      payment.PaidAmount,
		PendingAmount:   payment.PendingAmount,
		Status:          payment.Status,
		EffectiveStatus: payment.EffectiveStatus(now),
		DueDate:         payment.DueDate,
		CreatedAt:       payment.CreatedAt,
	}
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

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

	logger.Error("unexpected error", zap.Error(err))
	c.writeInternalError(w)
}

func (c *Controller) writeInternalError(w http.ResponseWriter) {
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

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
