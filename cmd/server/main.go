package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/config"
	"github.com/dogarmed/storefront/internal/repository/mongodb"
	"github.com/dogarmed/storefront/internal/repository/sheets"
	"github.com/dogarmed/storefront/internal/scheduler"
	"github.com/dogarmed/storefront/internal/server/handlers"
	"github.com/dogarmed/storefront/internal/server/router"
	alertssvc "github.com/dogarmed/storefront/internal/service/alerts"
	approvalssvc "github.com/dogarmed/storefront/internal/service/approvals"
	cartsvc "github.com/dogarmed/storefront/internal/service/cart"
	catalogsvc "github.com/dogarmed/storefront/internal/service/catalog"
	checkoutsvc "github.com/dogarmed/storefront/internal/service/checkout"
	directorysvc "github.com/dogarmed/storefront/internal/service/directory"
	handoffsvc "github.com/dogarmed/storefront/internal/service/handoff"
	ledgersvc "github.com/dogarmed/storefront/internal/service/ledger"
	"github.com/dogarmed/storefront/pkg/clients/backend"
	"github.com/dogarmed/storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Handoff storage: MongoDB when configured, in-process otherwise.
	var handoffRepo handoffsvc.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewHandoffRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.Cart.SessionTTL)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		handoffRepo = mongoRepo
		baseLogger.Info("handoff store backed by mongodb", zap.String("db", cfg.MongoDB.DBName))
	} else {
		handoffRepo = handoffsvc.NewMemoryRepository(cfg.Cart.SessionTTL)
		baseLogger.Warn("no mongodb uri configured, handoff store is in-memory")
	}

	// Ledger archive: only wired when a spreadsheet is configured.
	var appender ledgersvc.RowAppender
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewLedgerSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		appender = sheetsRepo
		baseLogger.Info("ledger spreadsheet archive enabled")
	} else {
		baseLogger.Warn("ledger spreadsheet archive disabled, no credentials configured")
	}

	backendClient := backend.NewClient(cfg.Backend)
	cartStore := cartsvc.NewStore(cfg.Cart.SessionTTL)

	handoffSvc := handoffsvc.NewService(handoffRepo, logger.Named(baseLogger, "svc.handoff"))
	catalogSvc := catalogsvc.NewService(backendClient, logger.Named(baseLogger, "svc.catalog"))
	directorySvc := directorysvc.NewService(backendClient, logger.Named(baseLogger, "svc.directory"))
	ledgerSvc := ledgersvc.NewService(backendClient, appender, logger.Named(baseLogger, "svc.ledger"))
	approvalsSvc := approvalssvc.NewService(backendClient, logger.Named(baseLogger, "svc.approvals"))
	alertsSvc := alertssvc.NewService(backendClient, handoffSvc, logger.Named(baseLogger, "svc.alerts"))
	checkoutSvc := checkoutsvc.NewService(backendClient, logger.Named(baseLogger, "svc.checkout"))

	engine := router.New(router.Handlers{
		Catalog:   handlers.NewCatalogHandler(catalogSvc, logger.Named(baseLogger, "handlers.catalog")),
		Directory: handlers.NewDirectoryHandler(directorySvc, logger.Named(baseLogger, "handlers.directory")),
		Ledger:    handlers.NewLedgerHandler(ledgerSvc, logger.Named(baseLogger, "handlers.ledger")),
		Approvals: handlers.NewApprovalsHandler(approvalsSvc, logger.Named(baseLogger, "handlers.approvals")),
		Alerts:    handlers.NewAlertsHandler(alertsSvc, logger.Named(baseLogger, "handlers.alerts")),
		Cart:      handlers.NewCartHandler(cartStore, handoffSvc, logger.Named(baseLogger, "handlers.cart")),
		Checkout:  handlers.NewCheckoutHandler(checkoutSvc, handoffSvc, logger.Named(baseLogger, "handlers.checkout")),
		Handoff:   handlers.NewHandoffHandler(handoffSvc, logger.Named(baseLogger, "handlers.handoff")),
	}, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Digest, alertsSvc, cartStore, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
