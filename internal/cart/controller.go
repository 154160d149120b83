package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"mercadito/internal/domain"
	"mercadito/internal/dto"
	apperrors "mercadito/internal/errors"
	orderservice "mercadito/internal/order/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductFinder interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, input orderservice.PlaceOrderInput) (*domain.Order, error)
}

type Controller struct {
	store    *Store
	products ProductFinder
	orders   OrderPlacer
	logger   *zap.Logger
}

func NewController(store *Store, products ProductFinder, orders OrderPlacer, logger *zap.Logger) *Controller {
	return &Controller{
		store:    store,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

func (c *Controller) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := c.store.Get(r.Context(), sessionID)
	if err != nil {
		c.logger.Error("get cart failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, toCartDTO(*cart))
}

func (c *Controller) HandleSetItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return
	}

	var req dto.SetCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Quantity < 0 || req.Quantity > 10000 {
		c.writeValidationError(w, "quantity out of range", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be between 0 and 10000",
		})
		return
	}

	product, err := c.products.FindByID(r.Context(), productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": err.Error(),
			})
			return
		}
		c.logger.Error("fetch product failed", zap.Int("productId", productID), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	if !product.IsActive && req.Quantity > 0 {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": "product is inactive",
		})
		return
	}

	cart, err := c.store.SetItem(r.Context(), sessionID, Item{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.BasePrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		c.logger.Error("set cart item failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, toCartDTO(*cart))
}

func (c *Controller) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	if err := c.store.Clear(r.Context(), sessionID); err != nil {
		c.logger.Error("clear cart failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCheckoutRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	cart, err := c.store.Get(r.Context(), sessionID)
	if err != nil {
		c.logger.Error("get cart failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	if len(cart.Items) == 0 {
		c.writeValidationError(w, "cart is empty", apperrors.ValidationDetail{
			Field:   "items",
			Message: "cart must contain at least one item",
		})
		return
	}

	items := make([]orderservice.PlaceOrderItemInput, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = orderservice.PlaceOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := c.orders.PlaceOrder(r.Context(), orderservice.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		c.handleCheckoutError(w, err)
		return
	}

	if err := c.store.Clear(r.Context(), sessionID); err != nil {
		// The order exists; losing the stale cart only risks a duplicate
		// checkout attempt, which pricing from the catalog keeps harmless.
		c.logger.Warn("clearing cart after checkout failed", zap.String("sessionId", sessionID), zap.Error(err))
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"orderId": order.ID,
		"total":   order.Total,
		"status":  order.Status,
	})
}

func (c *Controller) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		c.writeValidationError(w, "missing session id", apperrors.ValidationDetail{
			Field:   "sessionId",
			Message: "sessionId is required",
		})
		return "", false
	}
	return sessionID, true
}

func validateCheckoutRequest(req dto.CheckoutRequest) error {
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

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toCartDTO(cart Cart) dto.CartDTO {
	items := make([]dto.CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, dto.CartItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.UnitPrice * float64(item.Quantity),
		})
	}

	return dto.CartDTO{
		SessionID: cart.SessionID,
		Items:     items,
		Total:     cart.Total(),
		UpdatedAt: cart.UpdatedAt,
	}
}

func (c *Controller) handleCheckoutError(w http.ResponseWriter, err error) {
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

	c.logger.Error("checkout failed", zap.Error(err))
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
