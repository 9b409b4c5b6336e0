package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"biomed-backend/internal/catalog"
	"biomed-backend/internal/config"
	"biomed-backend/internal/db"
	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/httpserver"
	"biomed-backend/internal/pricing"
	orderrepo "biomed-backend/internal/repository/order"
	"biomed-backend/internal/service/auth"
	checkoutsvc "biomed-backend/internal/service/checkout"
	ordersvc "biomed-backend/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	var dbpool *pgxpool.Pool
	orderRepo := orderrepo.NewDisabled()
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		orderRepo = orderrepo.NewPostgres(pool, logger)
	} else {
		logger.Printf("DB_DSN not set, order persistence disabled")
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	builder := pricing.NewBuilder(cat, cfg.FrontendURL)
	gateway := stripe.New(cfg.StripeKey)
	checkoutService := checkoutsvc.New(builder, gateway, cfg.FrontendURL, cfg.Currency)
	orderService := ordersvc.New(orderRepo, gateway, builder, cfg.Currency, logger)
	authService := auth.New(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     cat,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		AuthSvc:     authService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
