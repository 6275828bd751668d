package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/acme/ledgerboard/internal/auth"
	authStore "github.com/acme/ledgerboard/internal/auth/store"
	"github.com/acme/ledgerboard/internal/config"
	"github.com/acme/ledgerboard/internal/customer"
	customerStore "github.com/acme/ledgerboard/internal/customer/store"
	"github.com/acme/ledgerboard/internal/database"
	ledgerHttp "github.com/acme/ledgerboard/internal/http"
	authHandler "github.com/acme/ledgerboard/internal/http/auth"
	customerHandler "github.com/acme/ledgerboard/internal/http/customer"
	dashboardHandler "github.com/acme/ledgerboard/internal/http/dashboard"
	invoiceHandler "github.com/acme/ledgerboard/internal/http/invoice"
	"github.com/acme/ledgerboard/internal/invoice"
	invoiceStore "github.com/acme/ledgerboard/internal/invoice/store"
	"github.com/acme/ledgerboard/internal/ratelimit"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/revenue"
	revenueStore "github.com/acme/ledgerboard/internal/revenue/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions, err := auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL)
	if err != nil {
		slog.Error("failed to configure sessions", "error", err)
		os.Exit(1)
	}

	var limiter auth.Limiter = ratelimit.Unlimited{}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()

		fw, err := ratelimit.NewFixedWindow(rdb, "", cfg.Redis.LoginLimit, cfg.Redis.LoginWindow)
		if err != nil {
			slog.Error("failed to configure rate limiter", "error", err)
			os.Exit(1)
		}

		limiter = fw
	} else {
		slog.Warn("REDIS_ADDR not set, login attempts are not rate limited")
	}

	registry := revalidate.NewRegistry()

	var (
		customerService = customer.NewService(customerStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db), customerService)
		revenueService  = revenue.NewService(revenueStore.New(db))
		authService     = auth.NewService(authStore.New(db), sessions, limiter)
		invoiceActions  = invoice.NewActions(invoiceService, registry, time.Now)
	)

	var (
		authH      = authHandler.NewHandler(authService, cfg.Auth.CookieName, cfg.Auth.SecureCookie)
		dashboardH = dashboardHandler.NewHandler(revenueService, invoiceService, registry)
		invoicesH  = invoiceHandler.NewHandler(invoiceService, invoiceActions, customerService, registry)
		customersH = customerHandler.NewHandler(customerService)
	)

	router := ledgerHttp.New(
		cfg.CORS.AllowedOrigins,
		auth.Gate(sessions, cfg.Auth.CookieName),
		authH,
		dashboardH,
		invoicesH,
		customersH,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
