package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id, quantity int) error
}

type PendingPaymentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, payment domain.PendingPayment) (uint, error)
}

type StoreSettingsRepository interface {
	Find(ctx context.Context) (*domain.StoreSettings, error)
}

type ChangeFeed interface {
	Changed(ctx context.Context, kind, entityID, action string)
}

type PlaceOrderInput struct {
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	Notes         *string
	Items         []PlaceOrderItemInput
}

type PlaceOrderItemInput struct {
	ProductID int
	Quantity  int
}

type OrderService struct {
	db             TransactionManager
	orderRepo      OrderRepository
	itemRepo       OrderItemRepository
	productRepo    ProductRepository
	paymentRepo    PendingPaymentRepository
	settingsRepo   StoreSettingsRepository
	feed           ChangeFeed
	logger         *zap.Logger
	txTimeout      time.Duration
	creditTermDays int
}

func NewOrderService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	productRepo ProductRepository,
	paymentRepo PendingPaymentRepository,
	settingsRepo StoreSettingsRepository,
	feed ChangeFeed,
	logger *zap.Logger,
	txTimeout time.Duration,
	creditTermDays int,
) *OrderService {
	return &OrderService{
		db:             db,
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		productRepo:    productRepo,
		paymentRepo:    paymentRepo,
		settingsRepo:   settingsRepo,
		feed:           feed,
		logger:         logger,
		txTimeout:      txTimeout,
		creditTermDays: creditTermDays,
	}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// PlaceOrder prices the requested items from the stored catalog, never from
// the client, and creates the order and its items in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	ids := make([]int, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperrors.NewConflictError(fmt.Sprintf("product %q is inactive", product.Name))
		}

		subtotal := product.BasePrice * float64(item.Quantity)
		total += subtotal
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.BasePrice,
			Subtotal:    subtotal,
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	orderID, err := s.orderRepo.Insert(txCtx, tx, domain.Order{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Total:         total,
		Status:        domain.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		item.OrderID = orderID
		if _, err := s.itemRepo.Insert(txCtx, tx, item); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(items)),
		zap.Float64("total", total))
	s.feed.Changed(ctx, "order", fmt.Sprintf("%d", orderID), "created")

	return s.GetOrder(ctx, orderID)
}

// UpdateStatus writes the new status and, on the transition to delivered,
// decrements product stock for every item and optionally opens a
// pending-payment record, all inside one transaction. The caller validates
// the transition beforehand.
func (s *OrderService) UpdateStatus(ctx context.Context, order *domain.Order, newStatus string, generatePayment bool) (*uint, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateStatus(txCtx, tx, order.ID, newStatus); err != nil {
		return nil, err
	}

	var paymentID *uint
	if newStatus == domain.OrderStatusDelivered {
		if err := s.decrementStockForOrder(txCtx, tx, order.ID); err != nil {
			return nil, err
		}

		if generatePayment {
			id, err := s.openPendingPayment(txCtx, tx, order)
			if err != nil {
				return nil, err
			}
			paymentID = &id
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.Uint("orderId", order.ID),
		zap.String("from", order.Status),
		zap.String("to", newStatus))
	s.feed.Changed(ctx, "order", fmt.Sprintf("%d", order.ID), "status_updated")
	if paymentID != nil {
		s.feed.Changed(ctx, "pending_payment", fmt.Sprintf("%d", *paymentID), "created")
	}

	return paymentID, nil
}

func (s *OrderService) decrementStockForOrder(ctx context.Context, tx *sql.Tx, orderID uint) error {
	settings, err := s.settingsRepo.Find(ctx)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return err
		}
		settings = nil
	}
	if settings != nil && !settings.HasStockControl {
		return nil
	}

	items, err := s.itemRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return nil
}

func (s *OrderService) openPendingPayment(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error) {
	termDays := s.creditTermDays
	if settings, err := s.settingsRepo.Find(ctx); err == nil && settings.CreditTermDays > 0 {
		termDays = settings.CreditTermDays
	}

	orderID := order.ID
	return s.paymentRepo.Insert(ctx, tx, domain.PendingPayment{
		OrderID:       &orderID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		TotalAmount:   order.Total,
		PaidAmount:    0,
		PendingAmount: order.Total,
		Status:        domain.PaymentStatusPending,
		DueDate:       time.Now().AddDate(0, 0, termDays),
	})
}
