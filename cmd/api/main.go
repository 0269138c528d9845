package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/s50889/ordesite2-sub001/api/routes"
	addressessvc "github.com/s50889/ordesite2-sub001/internal/addresses"
	announcementssvc "github.com/s50889/ordesite2-sub001/internal/announcements"
	"github.com/s50889/ordesite2-sub001/internal/audit"
	authsvc "github.com/s50889/ordesite2-sub001/internal/auth"
	cartsvc "github.com/s50889/ordesite2-sub001/internal/cart"
	dashboardsvc "github.com/s50889/ordesite2-sub001/internal/dashboard"
	"github.com/s50889/ordesite2-sub001/internal/notifications"
	orderssvc "github.com/s50889/ordesite2-sub001/internal/orders"
	productssvc "github.com/s50889/ordesite2-sub001/internal/products"
	shipmentssvc "github.com/s50889/ordesite2-sub001/internal/shipments"
	"github.com/s50889/ordesite2-sub001/internal/users"
	"github.com/s50889/ordesite2-sub001/pkg/auth/session"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	"github.com/s50889/ordesite2-sub001/pkg/db"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
	"github.com/s50889/ordesite2-sub001/pkg/metrics"
	"github.com/s50889/ordesite2-sub001/pkg/migrate"
	redisclient "github.com/s50889/ordesite2-sub001/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redisclient.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	productsRepo := productssvc.NewRepository(gormDB)
	ordersRepo := orderssvc.NewRepository(gormDB)
	addressesRepo := addressessvc.NewRepository(gormDB)
	announcementsRepo := announcementssvc.NewRepository(gormDB)
	shipmentsRepo := shipmentssvc.NewRepository(gormDB)
	auditRecorder := audit.NewRecorder(gormDB)
	notificationRecorder := notifications.NewRecorder(gormDB)

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orderssvc.NewService(
		ordersRepo,
		dbClient,
		addressesRepo,
		productsRepo,
		auditRecorder,
		notificationRecorder,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Registry:      registry,
		HTTPMetrics:   httpMetrics,
		Sessions:      sessionManager,
		Auth:          authsvc.NewService(usersRepo, sessionManager, cfg.JWT, cfg.Password),
		Cart:          cartService,
		Products:      productssvc.NewService(productsRepo),
		Orders:        ordersService,
		Dashboard:     dashboardsvc.NewService(ordersRepo, productsRepo, announcementsRepo),
		Shipments:     shipmentssvc.NewService(shipmentsRepo, ordersRepo),
		Announcements: announcementssvc.NewService(announcementsRepo),
		Addresses:     addressessvc.NewService(addressesRepo, dbClient),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeout); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
