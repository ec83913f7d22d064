package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/bizdesk/internal/app"
	"github.com/odyssey-erp/bizdesk/internal/export"
	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/observability"
	"github.com/odyssey-erp/bizdesk/internal/platform/cache"
	"github.com/odyssey-erp/bizdesk/internal/platform/db"
	"github.com/odyssey-erp/bizdesk/internal/rbac"
	"github.com/odyssey-erp/bizdesk/internal/shared"
	"github.com/odyssey-erp/bizdesk/internal/view"
	"github.com/odyssey-erp/bizdesk/jobs"
	"github.com/odyssey-erp/bizdesk/report"
	"github.com/odyssey-erp/bizdesk/web"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "bizdesk_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	bundle, err := i18n.Load(web.Locales, "i18n", cfg.DefaultLocale)
	if err != nil {
		logger.Error("load translations", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	listCache := listing.NewCache(redisClient, cfg.ListCacheTTL)
	listCache.OnLookup = metrics.CacheLookup

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer jobClient.Close()
	inspector := asynq.NewInspector(redisOpts)
	defer inspector.Close()

	resources, err := app.BuildResources(app.ResourceDeps{
		Pool:         dbpool,
		Cache:        listCache,
		FormsBaseURL: cfg.FormsBaseURL,
		PayrollQueue: jobClient,
	})
	if err != nil {
		logger.Error("register resources", slog.Any("error", err))
		os.Exit(1)
	}
	if err := resources.RBAC.EnsureScopes(ctx, resources.Registry.Names()...); err != nil {
		logger.Warn("ensure permissions", slog.Any("error", err))
	}
	if err := listCache.ListenForInvalidation(ctx, func(resource string, version int64) {
		logger.Debug("list cache bumped", slog.String("resource", resource), slog.Int64("version", version))
	}); err != nil {
		logger.Warn("subscribe list invalidations", slog.Any("error", err))
	}

	pdfClient := report.NewClient(cfg.GotenbergURL)
	layout := &view.Layout{CSRF: csrfManager, Bundle: bundle}
	listHandler := listing.NewHandler(listing.Params{
		Logger:      logger,
		Resources:   resources.Registry,
		Templates:   templates,
		Layout:      layout,
		Exporters:   export.NewRegistry(export.CSVExporter{}, export.ExcelExporter{}, export.NewPDFExporter(pdfClient)),
		Cache:       listCache,
		Metrics:     metrics,
		Idempotency: shared.NewIdempotencyStore(dbpool),
		Audit:       shared.NewAuditLogger(dbpool),
		Warmer:      jobClient,
		RBAC:        rbac.Middleware{Service: resources.RBAC, Logger: logger, Disabled: cfg.RBACDisabled},
		BulkLimit:   cfg.BulkDeleteConcurrency,
	})
	layout.Nav = listHandler.Nav()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		Layout:         layout,
		Bundle:         bundle,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Resources:      resources.Registry,
		ListHandler:    listHandler,
		ReportHandler:  report.NewHandler(pdfClient, logger),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
