package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/salescope/salestracker-backend-go/internal/config"
	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/middleware"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/response"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	db *database.DB,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	saleHandler SaleHandler,
	goalHandler GoalHandler,
	settingsHandler SettingsHandler,
	analyticsHandler AnalyticsHandler,
	importHandler ImportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			response.InternalServerError(w, "Database unreachable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, map[string]string{"version": cfg.App.Version})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{id}", employeeHandler.GetEmployee)
				r.Get("/{id}/balance", employeeHandler.Balance)

				// Manager and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.MinRole(user.RoleManager))
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", saleHandler.ListSales)
				r.Get("/recent", saleHandler.RecentSales)
				r.Get("/{id}", saleHandler.GetSale)

				// Data entry requires the user role or above
				r.Group(func(r chi.Router) {
					r.Use(middleware.MinRole(user.RoleUser))
					r.Post("/", saleHandler.CreateSale)
					r.Post("/import", importHandler.ImportCSV)
					r.Put("/{id}", saleHandler.UpdateSale)
					r.Delete("/{id}", saleHandler.DeleteSale)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.ListGoals)
				r.Get("/{id}", goalHandler.GetGoal)
				r.Get("/{id}/progress", goalHandler.Progress)

				// Manager and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.MinRole(user.RoleManager))
					r.Post("/", goalHandler.CreateGoal)
					r.Put("/{id}", goalHandler.UpdateGoal)
					r.Delete("/{id}", goalHandler.DeleteGoal)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)

				// Manager and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.MinRole(user.RoleManager))
					r.Put("/", settingsHandler.UpdateSettings)
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/sales-data", analyticsHandler.SalesData)
				r.Get("/trends", analyticsHandler.Trends)
				r.Get("/dashboard", analyticsHandler.Dashboard)
				r.Get("/export", analyticsHandler.ExportCSV)
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", userHandler.ListUsers)
				r.Post("/", userHandler.CreateUser)
				r.Get("/{id}", userHandler.GetUser)
				r.Put("/{id}", userHandler.UpdateUser)
				r.Delete("/{id}", userHandler.DeleteUser)
			})
		})
	})
	return r
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
