package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"delivery-admin-api/internal/client"
	"delivery-admin-api/internal/config"
	"delivery-admin-api/internal/logging"
	"delivery-admin-api/internal/repository"
	"delivery-admin-api/internal/server"
	"delivery-admin-api/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		os.Stderr.WriteString("no .env file found (ok in prod)\n")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		os.Stderr.WriteString("failed to parse config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.Log)

	db, err := client.InitDB(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}
	defer func() {
		if err := client.CloseDB(db); err != nil {
			log.WithError(err).Error("closing database")
		}
	}()

	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	errorLogRepo := repository.NewErrorLogRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	errorLogSvc := service.NewErrorLogService(errorLogRepo, log)
	ledger := service.NewInventoryLedger(productRepo, log)
	paymentSvc := service.NewPaymentService(db, orderRepo, paymentRepo, errorLogSvc, log)
	orderSvc := service.NewOrderService(db, orderRepo, productRepo, customerRepo, ledger, paymentSvc, errorLogSvc, log)
	customerSvc := service.NewCustomerService(customerRepo, log)
	catalogSvc := service.NewCatalogService(productRepo, vendorRepo, log)
	courierSvc := service.NewCourierService(courierRepo, deliveryRepo, orderRepo, errorLogSvc, log)
	dashboardSvc := service.NewDashboardService(statsRepo)

	srv := server.NewServer(
		orderSvc,
		paymentSvc,
		customerSvc,
		catalogSvc,
		courierSvc,
		dashboardSvc,
		errorLogSvc,
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
}
