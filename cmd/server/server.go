package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"design-studio/backend/internal/api"
	"design-studio/backend/internal/config"
	"design-studio/backend/internal/db"
	"design-studio/backend/internal/db/repositories"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/providers"
	"design-studio/backend/internal/routes"
	"design-studio/backend/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func run(parent context.Context, addr, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.HTTPAddr = addr
	}

	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Close()

	logging.Info("Studio backend starting up",
		"environment", cfg.AppEnv,
		"store_driver", cfg.Store.Driver,
		"timestamp", time.Now().Format(time.RFC3339),
	)
	if cfg.Klippy.APIKey == "" {
		logging.Warn("KLIPPY_API_KEY is not set, element catalog will serve fallback data")
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	repo, err := db.OpenStatusCheckRepository(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	logging.Info("Status check store ready", "driver", repo.Driver())
	repo = repositories.WithMetrics(repo, metricsReg)

	klippy := providers.NewKlippyProvider(cfg.Klippy.BaseURL, cfg.Klippy.APIKey, cfg.Klippy.Timeout)
	logging.Info("Element catalog configured",
		"provider", klippy.GetProviderType(),
		"base_url", klippy.BaseURL,
		"timeout", cfg.Klippy.Timeout.String(),
	)
	deps := api.NewDependencies(
		services.NewStatusService(repo, metricsReg),
		services.NewCatalogService(klippy, metricsReg),
	)

	if cfg.Cloudinary.Enabled() {
		cld, err := providers.NewCloudinaryProvider(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.APIBaseURL,
			cfg.Cloudinary.Timeout,
		)
		if err != nil {
			repo.Close(ctx)
			return fmt.Errorf("init media library: %w", err)
		}
		deps.WithMedia(services.NewMediaService(cld, metricsReg))
		logging.Info("Media library configured",
			"provider", cld.GetProviderType(),
			"cloud_name", cfg.Cloudinary.CloudName,
		)
	} else {
		logging.Warn("CLOUDINARY_CLOUD_NAME is not set, media library routes will answer 503")
	}

	router := routes.RegisterRoutes(deps, routes.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
		Metrics:        metricsReg,
		Gatherer:       prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := repo.Close(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		return err
	}
	logging.Info("Server stopped")
	return nil
}
