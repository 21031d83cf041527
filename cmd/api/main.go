package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/noir-essentials/storefront-backend/internal/config"
	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
	"github.com/noir-essentials/storefront-backend/internal/modules/discount"
	"github.com/noir-essentials/storefront-backend/internal/modules/order"
	"github.com/noir-essentials/storefront-backend/internal/modules/payment"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewMemoryRepository(catalog.SeedProducts())
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Cart ────────────────────────────────────────────────
	cartRepo := cart.NewMemoryRepository()
	cartService := cart.NewService(cartRepo, catalogService)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Discounts ───────────────────────────────────────────
	discountResolver := discount.NewStaticResolver()
	discount.NewHandler(discountResolver).RegisterRoutes(router)

	// ── Order Ledger ────────────────────────────────────────
	orderRepo := order.NewMemoryRepository()
	orderService := order.NewService(orderRepo, cartService, discountResolver)
	order.NewHandler(orderService, cartSessionKey).RegisterRoutes(router)

	// ── Payments ────────────────────────────────────────────
	gateway := payment.NewBankTransferGateway(
		cfg.PaymentAccountName,
		cfg.PaymentAccountNumber,
		cfg.PaymentBankName,
	)
	paymentService := payment.NewService(gateway, orderService)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Start server, stop on SIGINT/SIGTERM ────────────────
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.WithFields(log.Fields{"port": cfg.Port}).Info("storefront API server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

func cartSessionKey(r *http.Request) string {
	if key := r.Header.Get("X-Session-ID"); key != "" {
		return key
	}
	return cart.DefaultSessionKey
}
