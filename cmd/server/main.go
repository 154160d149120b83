package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mercadito/internal/cart"
	"mercadito/internal/catalog"
	"mercadito/internal/commons"
	"mercadito/internal/credit"
	"mercadito/internal/dashboard"
	"mercadito/internal/feed"
	"mercadito/internal/infrastructure/logger"
	"mercadito/internal/infrastructure/mysql"
	"mercadito/internal/infrastructure/redisx"
	"mercadito/internal/order"
	"mercadito/internal/payment"
	"mercadito/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	rdb := redisx.New(cfg.Redis)
	defer rdb.Close()

	changeFeed := feed.New(rdb, zapLogger)

	catalogCtrl := catalog.NewModule(db, zapLogger)
	orderCtrl, orderSvc := order.NewModule(db, cfg, changeFeed, zapLogger)
	cartCtrl := cart.NewModule(db, cfg, rdb, orderSvc, zapLogger)
	creditCtrl := credit.NewModule(db, cfg, changeFeed, zapLogger)
	paymentCtrl := payment.NewModule(db, cfg, changeFeed, zapLogger)
	dashboardCtrl := dashboard.NewModule(db, zapLogger)

	router := server.NewRouter(server.Controllers{
		Catalog:   catalogCtrl,
		Cart:      cartCtrl,
		Orders:    orderCtrl,
		Credit:    creditCtrl,
		Payments:  paymentCtrl,
		Dashboard: dashboardCtrl,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
