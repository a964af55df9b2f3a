package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenttrack-backend/internal/config"
	"talenttrack-backend/internal/handlers"
	"talenttrack-backend/internal/middleware"
	"talenttrack-backend/internal/repository"
	"talenttrack-backend/internal/services"
	"talenttrack-backend/internal/token"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Environment first, so it can override the config file
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("Failed to create uploads directory")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	tokens := token.NewService(cfg.JWT.Secret)
	userService := services.NewUserService(userRepo, tokens)
	opportunityService := services.NewOpportunityService(opportunityRepo)
	messageService := services.NewMessageService(messageRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, cfg.Uploads.Dir)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/feed", userHandler.Feed)
		r.Get("/user/{id}", userHandler.GetByID)
		r.Get("/all-opportunities", opportunityHandler.ListAll)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Get("/user/me", userHandler.Me)
			r.Put("/user/update", userHandler.UpdateProfile)
			r.Post("/user/upload-photo", userHandler.UploadPhoto)
			r.Get("/my-trials", opportunityHandler.MyTrials)
			r.Post("/opportunities/{id}/apply", opportunityHandler.Apply)
			r.Post("/messages/send", messageHandler.Send)
			r.Get("/messages/{otherUserId}", messageHandler.Thread)

			// Scout-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireScout)
				r.Post("/opportunities", opportunityHandler.Create)
			})
		})
	})

	// Uploaded profile photos are served back from local disk
	uploadsServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Get("/uploads/*", uploadsServer.ServeHTTP)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, x-auth-token")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
