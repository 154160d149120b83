package server

import (
	"net/http"
	"time"

	"mercadito/internal/cart"
	"mercadito/internal/catalog"
	"mercadito/internal/dashboard"
	creditcontroller "mercadito/internal/credit/controller"
	ordercontroller "mercadito/internal/order/controller"
	"mercadito/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Controllers struct {
	Catalog   *catalog.Controller
	Cart      *cart.Controller
	Orders    *ordercontroller.OrdersController
	Credit    *creditcontroller.CreditController
	Payments  *payment.Controller
	Dashboard *dashboard.Controller
}

func NewRouter(ctrl Controllers, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", ctrl.Catalog.HandleListProducts)
		r.Post("/", ctrl.Catalog.HandleCreateProduct)
		r.Put("/{id}", ctrl.Catalog.HandleUpdateProduct)
		r.Patch("/{id}/stock", ctrl.Catalog.HandleAdjustStock)
	})

	r.Route("/carts/{sessionId}", func(r chi.Router) {
		r.Get("/", ctrl.Cart.HandleGetCart)
		r.Put("/items/{productId}", ctrl.Cart.HandleSetItem)
		r.Delete("/", ctrl.Cart.HandleClearCart)
		r.Post("/checkout", ctrl.Cart.HandleCheckout)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", ctrl.Orders.HandleListOrders)
		r.Post("/", ctrl.Orders.HandlePlaceOrder)
		r.Get("/{id}", ctrl.Orders.HandleGetOrder)
		r.Patch("/{id}/status", ctrl.Orders.HandleUpdateStatus)
	})

	r.Route("/credit-requests", func(r chi.Router) {
		r.Get("/", ctrl.Credit.HandleListRequests)
		r.Post("/", ctrl.Credit.HandleCreateRequest)
		r.Post("/{id}/approve", ctrl.Credit.HandleApprove)
		r.Post("/{id}/reject", ctrl.Credit.HandleReject)
	})

	r.Route("/pending-payments", func(r chi.Router) {
		r.Get("/", ctrl.Payments.HandleListPayments)
		r.Post("/{id}/payments", ctrl.Payments.HandleRecordPayment)
		r.Post("/{id}/mark-paid", ctrl.Payments.HandleMarkPaid)
	})

	r.Get("/dashboard", ctrl.Dashboard.HandleDashboard)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
