package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	companyStore "github.com/MrJamesThe3rd/biztime/internal/company/store"
	"github.com/MrJamesThe3rd/biztime/internal/config"
	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/export"
	bizHttp "github.com/MrJamesThe3rd/biztime/internal/http"
	companyHandler "github.com/MrJamesThe3rd/biztime/internal/http/company"
	exportHandler "github.com/MrJamesThe3rd/biztime/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/biztime/internal/http/importcsv"
	industryHandler "github.com/MrJamesThe3rd/biztime/internal/http/industry"
	invoiceHandler "github.com/MrJamesThe3rd/biztime/internal/http/invoice"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
	industryStore "github.com/MrJamesThe3rd/biztime/internal/industry/store"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/biztime/internal/invoice/store"
	"github.com/MrJamesThe3rd/biztime/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.Log.Format, cfg.LogLevel()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		companyService  = company.NewService(companyStore.New(db), company.WithInvoiceCascade(cfg.Company.DeletePolicy == config.DeleteCascade))
		industryService = industry.NewService(industryStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		importService   = importer.NewService(companyService, industryService)
		exportService   = export.NewService(invoiceService)
	)

	router := bizHttp.New(
		bizHttp.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			JWTSecret:      cfg.Auth.JWTSecret,
		},
		db,
		companyHandler.NewHandler(companyService),
		industryHandler.NewHandler(industryService),
		invoiceHandler.NewHandler(invoiceService),
		importHandler.NewHandler(importService),
		exportHandler.NewHandler(exportService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "delete_policy", cfg.Company.DeletePolicy)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	slog.Info("server stopped")
}
