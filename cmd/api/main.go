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

	"golang.org/x/sync/errgroup"

	"github.com/salescope/salestracker-backend-go/internal/config"
	"github.com/salescope/salestracker-backend-go/internal/fixtures"
	appHTTP "github.com/salescope/salestracker-backend-go/internal/handler/http"
	"github.com/salescope/salestracker-backend-go/internal/pkg/cron"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/pkg/jwt"
	"github.com/salescope/salestracker-backend-go/internal/pkg/oauth"
	"github.com/salescope/salestracker-backend-go/internal/pkg/storage"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
	analyticsService "github.com/salescope/salestracker-backend-go/internal/service/analytics"
	authService "github.com/salescope/salestracker-backend-go/internal/service/auth"
	importService "github.com/salescope/salestracker-backend-go/internal/service/bulkimport"
	employeeService "github.com/salescope/salestracker-backend-go/internal/service/employee"
	goalService "github.com/salescope/salestracker-backend-go/internal/service/goal"
	saleService "github.com/salescope/salestracker-backend-go/internal/service/sale"
	settingsService "github.com/salescope/salestracker-backend-go/internal/service/settings"
	userService "github.com/salescope/salestracker-backend-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if err := fixtures.EnsureAdmin(ctx, db, cfg.Admin, logger); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	goalRepo := postgresql.NewGoalRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	// Google login stays off unless configured; the handler treats a
	// nil service as disabled.
	var googleSvc oauth.GoogleService
	if cfg.OAuth2Google.Enabled {
		googleSvc = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	// Same opt-in treatment for the import archive.
	var archive storage.FileStorage
	if cfg.Import.ArchiveDir != "" {
		archive, err = storage.NewLocalStorage(cfg.Import.ArchiveDir)
		if err != nil {
			return fmt.Errorf("failed to initialize import archive: %w", err)
		}
	}

	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, jwtRepo)
	userSvc := userService.NewUserService(db, userRepo, jwtRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, saleRepo, settingsRepo)
	saleSvc := saleService.NewSaleService(saleRepo, employeeRepo)
	goalSvc := goalService.NewGoalService(goalRepo, employeeRepo, saleRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(saleRepo, employeeRepo, goalRepo, settingsRepo)
	importSvc := importService.NewImportService(db, saleRepo, employeeRepo, archive, cfg.Import.MaxRows)

	router := appHTTP.NewRouter(
		cfg,
		db,
		jwtSvc,
		appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewSaleHandler(saleSvc),
		appHTTP.NewGoalHandler(goalSvc),
		appHTTP.NewSettingsHandler(settingsSvc),
		appHTTP.NewAnalyticsHandler(analyticsSvc),
		appHTTP.NewImportHandler(importSvc),
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewTokenJobs(jwtRepo, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(shutdownCtx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})

	return g.Wait()
}
