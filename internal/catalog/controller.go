package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"

	"github.com/go-chi/chi/v5"
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

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	query := ListQuery{
		Search:       r.URL.Query().Get("search"),
		Category:     r.URL.Query().Get("category"),
		LowStockOnly: r.URL.Query().Get("lowStock") == "true",
	}

	result, err := c.service.ListProducts(r.Context(), query)
	if err != nil {
		c.logger.Error("list products failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	products := make([]ProductDTO, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, toProductDTO(p))
	}

	c.writeJSON(w, http.StatusOK, ListProductsResponse{
		Products: products,
		Stats: CatalogStatsDTO{
			TotalProducts:  result.Stats.TotalProducts,
			LowStockCount:  result.Stats.LowStockCount,
			InventoryValue: result.Stats.InventoryValue,
		},
	})
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateProductRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), domain.Product{
		Name:          req.Name,
		Category:      req.Category,
		Packaging:     req.Packaging,
		BasePrice:     req.BasePrice,
		Stock:         req.Stock,
		LowStockAlert: req.LowStockAlert,
	})
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toProductDTO(*product))
}

func (c *Controller) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateProductRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := c.service.UpdateProduct(r.Context(), domain.Product{
		ID:            id,
		Name:          req.Name,
		Category:      req.Category,
		Packaging:     req.Packaging,
		BasePrice:     req.BasePrice,
		LowStockAlert: req.LowStockAlert,
		IsActive:      isActive,
	})
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (c *Controller) HandleAdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Stock < 0 {
		c.writeValidationError(w, "stock must be non-negative", apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be non-negative",
		})
		return
	}

	product, err := c.service.AdjustStock(r.Context(), id, req.Stock)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (c *Controller) validateProductRequest(req ProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.BasePrice <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "basePrice",
			Message: "basePrice must be positive",
		})
	}

	if req.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be non-negative",
		})
	}

	if req.LowStockAlert < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lowStockAlert",
			Message: "lowStockAlert must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Packaging:     p.Packaging,
		BasePrice:     p.BasePrice,
		Stock:         p.Stock,
		LowStockAlert: p.LowStockAlert,
		LowStock:      p.LowStock(),
		IsActive:      p.IsActive,
	}
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("catalog operation failed", zap.Error(err))
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
