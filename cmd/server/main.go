// Command server starts the Bibliotec catalog and reservation API.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bibliotec/internal/api"
	"bibliotec/internal/auth"
	"bibliotec/internal/config"
	"bibliotec/internal/migrate"
	"bibliotec/internal/repository"
	"bibliotec/internal/service"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open DB", zap.Error(err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}

	if err := migrate.Up(ctx, db); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Services
	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret))
	notifier := service.NewNotifier(logger)
	authSvc := service.NewAuthService(userRepo, tokens)
	catalogSvc := service.NewCatalogService(bookRepo)
	favoriteSvc := service.NewFavoriteService(favoriteRepo)
	reservationSvc := service.NewReservationService(reservationRepo, bookRepo, userRepo, notifier, logger)
	profileSvc := service.NewProfileService(userRepo)
	jobSvc := service.NewJobService(reservationRepo, logger)

	// Handlers
	authHandler := api.NewAuthHandler(authSvc)
	bookHandler := api.NewBookHandler(catalogSvc)
	favoriteHandler := api.NewFavoriteHandler(favoriteSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	profileHandler := api.NewProfileHandler(profileSvc)

	r := mux.NewRouter()
	r.Use(api.Recover(logger), api.Logging(logger))

	// Public endpoints
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/books", bookHandler.List).Methods("GET")
	r.HandleFunc("/api/books/{id}", bookHandler.Get).Methods("GET")

	// Authenticated endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(tokens))
	protected.HandleFunc("/favorites", favoriteHandler.List).Methods("GET")
	protected.HandleFunc("/favorites/{bookId}", favoriteHandler.Toggle).Methods("POST")
	protected.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	protected.HandleFunc("/reservations/{bookId}", reservationHandler.Create).Methods("POST")
	protected.HandleFunc("/reservations/{id}", reservationHandler.Cancel).Methods("DELETE")
	protected.HandleFunc("/profile", profileHandler.Get).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.Update).Methods("PUT")
	protected.HandleFunc("/profile", profileHandler.Delete).Methods("DELETE")

	// Hourly expiry of reservations never picked up
	c := cron.New()
	if _, err := c.AddFunc("@hourly", jobSvc.ExpireUnclaimedReservations); err != nil {
		logger.Fatal("cron schedule", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
	)(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
