package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mercadito/internal/domain"
	"mercadito/internal/dto"
	apperrors "mercadito/internal/errors"
	"mercadito/internal/order/service"
	"mercadito/internal/projector"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id uint) (*domain.Order, error)
	PlaceOrder(ctx context.Context, input service.PlaceOrderInput) (*domain.Order, error)
}

type UpdateStatusUseCase interface {
	UpdateStatus(ctx context.Context, orderID uint, newStatus string, generatePayment bool) (*uint, error)
}

type SnapshotCache interface {
	CachedSnapshot(ctx context.Context, kind string) ([]byte, bool)
	StoreSnapshot(ctx context.Context, kind string, payload []byte)
}

type OrdersController struct {
	service       OrderService
	updateStatus  UpdateStatusUseCase
	snapshotCache SnapshotCache
	logger        *zap.Logger
}

func NewOrdersController(
	svc OrderService,
	updateStatus UpdateStatusUseCase,
	snapshotCache SnapshotCache,
	logger *zap.Logger,
) *OrdersController {
	return &OrdersController{
		service:       svc,
		updateStatus:  updateStatus,
		snapshotCache: snapshotCache,
		logger:        logger,
	}
}

func (c *OrdersController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = projector.All
	}

	if status != projector.All && !domain.ValidOrderStatus(status) {
		c.writeValidationError(w, "unknown status filter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be all or a known order status",
		})
		return
	}

	// The unfiltered listing is the hot path; serve it from the cached
	// snapshot when one is present.
	unfiltered := search == "" && status == projector.All
	if unfiltered {
		if cached, ok := c.snapshotCache.CachedSnapshot(r.Context(), "order"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	orders, err := c.service.ListOrders(r.Context())
	if err != nil {
		c.logger.Error("list orders failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	records := make([]projector.Record, len(orders))
	for i, order := range orders {
		records[i] = order
	}
	result := projector.Project(records, projector.Query{
		Text:   search,
		Status: status,
		Type:   projector.All,
		Sort:   projector.SortCreatedDesc,
	}, time.Now())

	visible := make([]dto.OrderDTO, 0, len(result.Visible))
	for _, record := range result.Visible {
		visible = append(visible, toOrderDTO(record.(domain.Order)))
	}

	response := dto.OrderListResponse{Orders: visible, Stats: result.Stats}
	if unfiltered {
		if payload, err := json.Marshal(response); err == nil {
			c.snapshotCache.StoreSnapshot(r.Context(), "order", payload)
		}
	}

	c.writeJSON(w, http.StatusOK, response)
}

func (c *OrdersController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	order, err := c.service.GetOrder(r.Context(), uint(id))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": err.Error(),
			})
			return
		}
		c.logger.Error("get order failed", zap.Uint64("orderId", id), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(*order))
}

func (c *OrdersController) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validatePlaceOrderRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	items := make([]service.PlaceOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PlaceOrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	order, err := c.service.PlaceOrder(r.Context(), service.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		c.handleWriteError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderDTO(*order))
}

func (c *OrdersController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	paymentID, err := c.updateStatus.UpdateStatus(r.Context(), uint(id), req.Status, req.GeneratePayment)
	if err != nil {
		c.handleWriteError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UpdateOrderStatusResponse{
		TraceID:   traceID,
		OrderID:   uint(id),
		Status:    req.Status,
		PaymentID: paymentID,
		Timestamp: time.Now().UTC(),
	})
}

func validatePlaceOrderRequest(req dto.PlaceOrderRequest) error {
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

	switch req.PaymentMethod {
	case domain.PaymentMethodCash, domain.PaymentMethodTransfer,
		domain.PaymentMethodCashOnDelivery, domain.PaymentMethodCredit:
	default:
		details = append(details, apperrors.ValidationDetail{
			Field:   "paymentMethod",
			Message: "paymentMethod must be cash, transfer, cash_on_delivery or credit",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	productIDMap := make(map[int]bool)
	for idx, item := range req.Items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "each productId must be a positive integer",
			})
		}

		if productIDMap[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "productId must not be duplicated",
			})
		}
		productIDMap[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > 10000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be between 1 and 10000",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toOrderDTO(order domain.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	return dto.OrderDTO{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         items,
		Total:         order.Total,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
	}
}

func (c *OrdersController) handleWriteError(w http.ResponseWriter, err error, logger *zap.Logger) {
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

func (c *OrdersController) writeInternalError(w http.ResponseWriter) {
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

func (c *OrdersController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrdersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
