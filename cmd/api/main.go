package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborline/storefront-backend/api/routes"
	cartsvc "github.com/harborline/storefront-backend/internal/cart"
	"github.com/harborline/storefront-backend/internal/menu"
	"github.com/harborline/storefront-backend/internal/newsletter"
	"github.com/harborline/storefront-backend/internal/optimistic"
	viewersvc "github.com/harborline/storefront-backend/internal/viewer"
	"github.com/harborline/storefront-backend/pkg/config"
	"github.com/harborline/storefront-backend/pkg/db"
	"github.com/harborline/storefront-backend/pkg/logger"
	"github.com/harborline/storefront-backend/pkg/mailer"
	"github.com/harborline/storefront-backend/pkg/metrics"
	"github.com/harborline/storefront-backend/pkg/migrate"
	"github.com/harborline/storefront-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	notifier := optimistic.NewNotifier()
	unsubscribe := notifier.Subscribe(func(cartID uuid.UUID) {
		ctx := logg.WithCartID(context.Background(), cartID.String())
		logg.Info(ctx, "cart overlay changed")
	})
	defer unsubscribe()

	overlay, err := optimistic.NewStore(redisClient, cfg.Optimistic.PatchTTL, notifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create overlay store", err)
		os.Exit(1)
	}

	discountRepo := cartsvc.NewDiscountCodeRepository(dbClient.DB())
	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		DB:           dbClient.DB(),
		Repo:         cartsvc.NewRepository(dbClient.DB()),
		DiscountRepo: discountRepo,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	mutationMetrics := metrics.NewMutationMetrics(registry)

	cartSubmitter, err := cartsvc.NewSubmitter(cartsvc.SubmitterParams{
		Service:      cartService,
		Overlay:      overlay,
		Notifier:     notifier,
		DiscountRepo: discountRepo,
		Metrics:      mutationMetrics,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart submitter", err)
		os.Exit(1)
	}

	viewerSessions, err := viewersvc.NewSessionStore(redisClient, cfg.Viewer.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create viewer session store", err)
		os.Exit(1)
	}

	viewerService, err := viewersvc.NewService(viewersvc.ServiceParams{
		Repo:     viewersvc.NewRepository(dbClient.DB()),
		Sessions: viewerSessions,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create viewer service", err)
		os.Exit(1)
	}

	mailerClient, err := mailer.New(cfg.Newsletter)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer client", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.ServiceParams{
		Provider:        mailerClient,
		Guard:           redisClient,
		Repo:            newsletter.NewRepository(dbClient.DB()),
		Logger:          logg,
		PendingTTL:      cfg.Newsletter.PendingTTL,
		SuccessMessage:  cfg.Newsletter.SuccessMessage,
		FallbackMessage: cfg.Newsletter.FallbackMessage,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	menuService, err := menu.NewService(menu.ServiceParams{
		Repo:   menu.NewRepository(dbClient.DB()),
		Theme:  cfg.Theme,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			cartService,
			cartSubmitter,
			viewerService,
			newsletterService,
			menuService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
