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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nfeintake/internal/config"
	"nfeintake/internal/handler"
	"nfeintake/internal/logger"
	"nfeintake/internal/repository/postgres"
	"nfeintake/internal/router"
	"nfeintake/internal/service"
	s3storage "nfeintake/internal/storage/s3"
)

const shutdownTimeout = 20 * time.Second

// @title NF-e Intake API
// @version 1.0
// @description Imports NF-e XML invoices as draft goods receivings.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize storage
	s3Client, err := s3storage.NewClient(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize repositories
	receivingRepo := postgres.NewReceivingRepo(db)
	itemRepo := postgres.NewReceivingItemRepo(db)
	installmentRepo := postgres.NewPaymentInstallmentRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	catalogRepo := postgres.NewCatalogItemRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	linkRepo := postgres.NewDocumentLinkRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	ingestSvc := service.NewIngestService(
		receivingRepo, itemRepo, installmentRepo, supplierRepo, catalogRepo,
		documentRepo, linkRepo, auditRepo, s3Client, postgres.NewTransactor(db),
		&cfg.S3, cfg.Ingest, zl,
	)

	// Initialize handlers
	receivingH := handler.NewReceivingHandler(ingestSvc, cfg.S3.MaxFileSizeMB, zl)
	healthH := handler.NewHealthHandler(db, handler.PingFunc(s3Client.Ping), zl)

	r := router.Setup(cfg, zl, authSvc, receivingH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	zl.Info("server stopped")
	return nil
}
