package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mahad1921/DineSight/internal/config"
	"github.com/mahad1921/DineSight/internal/db"
	"github.com/mahad1921/DineSight/internal/handlers"
	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/repo"
	"github.com/mahad1921/DineSight/internal/session"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogging(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Migrate, then seed reference data (halls, initial users). Both are
	// idempotent so restarts are safe.
	dbURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	if err := db.Migrate(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.Seed(context.Background(), database); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Repos
	userRepo := repo.NewUserRepo(database)
	hallRepo := repo.NewHallRepo(database)
	checkinRepo := repo.NewCheckInRepo(database)
	followRepo := repo.NewFollowRepo(database)

	sessions := &session.Manager{
		Users:      userRepo,
		Production: cfg.IsProduction(),
		Domain:     cfg.CookieDomain,
	}

	authHandler := &handlers.AuthHandler{Users: userRepo, Sessions: sessions}
	feedHandler := &handlers.FeedHandler{CheckIns: checkinRepo, Halls: hallRepo, Users: userRepo, Follows: followRepo}
	checkinHandler := &handlers.CheckInHandler{CheckIns: checkinRepo, Halls: hallRepo}
	followHandler := &handlers.FollowHandler{Follows: followRepo}
	diningHandler := &handlers.DiningHandler{Halls: hallRepo, CheckIns: checkinRepo}
	profileHandler := &handlers.ProfileHandler{Users: userRepo, Follows: followRepo, CheckIns: checkinRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))

	// Health and metrics (no auth, no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/", authHandler.LoginPage)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/signup", authHandler.SignupPage)
	r.Post("/signup", authHandler.Signup)
	r.Post("/logout", authHandler.Logout)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(sessions))
		r.Get("/feed", feedHandler.Feed)
		r.Get("/people/search", feedHandler.PeopleSearch)
		r.Get("/dining/{hallID}", diningHandler.Hall)
		r.Get("/user/{userID}", profileHandler.Profile)
		r.Post("/checkin", checkinHandler.CheckIn)
		r.Post("/checkin/clear", checkinHandler.Clear)
		r.Post("/follow", followHandler.Follow)
		r.Post("/unfollow", followHandler.Unfollow)
	})

	// Start server LAST
	slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
