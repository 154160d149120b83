package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mercadito/internal/domain"
	"mercadito/internal/dto"
	apperrors "mercadito/internal/errors"
	"mercadito/internal/projector"

	"go.uber.org/zap"
)

type OrderLister interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type CreditRequestLister interface {
	FindAll(ctx context.Context) ([]domain.CreditRequest, error)
}

type PendingPaymentLister interface {
	FindAll(ctx context.Context) ([]domain.PendingPayment, error)
}

// Controller serves the combined activity view: every order, credit request,
// and pending payment merged into a single projector pass so one query can
// search and filter across all three collections at once.
type Controller struct {
	orders   OrderLister
	credits  CreditRequestLister
	payments PendingPaymentLister
	logger   *zap.Logger
}

func NewController(
	orders OrderLister,
	credits CreditRequestLister,
	payments PendingPaymentLister,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		orders:   orders,
		credits:  credits,
		payments: payments,
		logger:   logger,
	}
}

var dashboardKinds = map[string]bool{
	"order":           true,
	"credit_request":  true,
	"pending_payment": true,
}

var dashboardStatuses = map[string]bool{
	domain.OrderStatusPending:    true,
	domain.OrderStatusConfirmed:  true,
	domain.OrderStatusProcessing: true,
	domain.OrderStatusDelivered:  true,
	domain.OrderStatusCancelled:  true,
	domain.CreditStatusApproved:  true,
	domain.CreditStatusRejected:  true,
	domain.PaymentStatusPartial:  true,
	domain.PaymentStatusPaid:     true,
	domain.PaymentStatusDueSoon:  true,
	domain.PaymentStatusOverdue:  true,
}

func (c *Controller) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = projector.All
	}
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = projector.All
	}

	if kind != projector.All && !dashboardKinds[kind] {
		c.writeValidationError(w, "unknown type filter", apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be all, order, credit_request or pending_payment",
		})
		return
	}

	if status != projector.All && !dashboardStatuses[status] {
		c.writeValidationError(w, "unknown status filter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be all or a known status",
		})
		return
	}

	records, err := c.loadSnapshot(r.Context())
	if err != nil {
		c.logger.Error("load dashboard snapshot failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	now := time.Now()
	result := projector.Project(records, projector.Query{
		Text:   search,
		Status: status,
		Type:   kind,
		Sort:   projector.SortCreatedDesc,
	}, now)

	entries := make([]dto.DashboardEntryDTO, 0, len(result.Visible))
	for _, record := range result.Visible {
		entries = append(entries, toDashboardEntry(record, now))
	}

	c.writeJSON(w, http.StatusOK, dto.DashboardResponse{
		Entries: entries,
		Stats:   result.Stats,
	})
}

// loadSnapshot reads all three collections and flattens them into one
// record slice for the projector.
func (c *Controller) loadSnapshot(ctx context.Context) ([]projector.Record, error) {
	orders, err := c.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	credits, err := c.credits.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := c.payments.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]projector.Record, 0, len(orders)+len(credits)+len(payments))
	for _, order := range orders {
		records = append(records, order)
	}
	for _, credit := range credits {
		records = append(records, credit)
	}
	for _, payment := range payments {
		records = append(records, payment)
	}

	return records, nil
}

func toDashboardEntry(record projector.Record, now time.Time) dto.DashboardEntryDTO {
	switch v := record.(type) {
	case domain.Order:
		return dto.DashboardEntryDTO{
			Kind:          v.Kind(),
			ID:            v.ID,
			CustomerName:  v.CustomerName,
			CustomerPhone: v.CustomerPhone,
			Status:        v.Status,
			Amount:        v.Total,
			CreatedAt:     v.CreatedAt,
		}
	case domain.CreditRequest:
		return dto.DashboardEntryDTO{
			Kind:          v.Kind(),
			ID:            v.ID,
			CustomerName:  v.CustomerName,
			CustomerPhone: v.CustomerPhone,
			Status:        v.Status,
			Amount:        v.RequestedAmount,
			CreatedAt:     v.CreatedAt,
		}
	case domain.PendingPayment:
		due := v.DueDate
		return dto.DashboardEntryDTO{
			Kind:          v.Kind(),
			ID:            v.ID,
			CustomerName:  v.CustomerName,
			CustomerPhone: v.CustomerPhone,
			Status:        v.EffectiveStatus(now),
			Amount:        v.PendingAmount,
			DueDate:       &due,
			CreatedAt:     v.CreatedAt,
		}
	default:
		return dto.DashboardEntryDTO{}
	}
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
