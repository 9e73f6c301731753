// @title         fundwatch API
// @version       1.0
// @description   Mutual-fund watchlist service: registration, login and a per-user list of saved funds behind JWT bearer auth.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"time"

	_ "github.com/artem13815/fundwatch/docs"
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/fundwatch/api/http"
	"github.com/artem13815/fundwatch/api/http/handlers"
	"github.com/artem13815/fundwatch/pkg/auth"
	"github.com/artem13815/fundwatch/pkg/config"
	"github.com/artem13815/fundwatch/pkg/health"
	healthpg "github.com/artem13815/fundwatch/pkg/health/checkers"
	memrepo "github.com/artem13815/fundwatch/pkg/repository/memory"
	pgrepo "github.com/artem13815/fundwatch/pkg/repository/postgres"
	"github.com/artem13815/fundwatch/pkg/security/jwt"
	"github.com/artem13815/fundwatch/pkg/storage/postgres"
	"github.com/artem13815/fundwatch/pkg/watchlist"
)

func main() {
	app := fiber.New()

	// Load configuration from env/.env
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET не задан: сервис не стартует с пустым ключом подписи")
	}

	// Storage: PostgreSQL when DATABASE_URL is set, in-memory otherwise.
	var (
		userRepo      auth.UserRepository
		savedFundRepo watchlist.Repository
		checkers      []health.Checker
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()

		userRepo, err = pgrepo.NewUserRepository(pool)
		if err != nil {
			log.Fatalf("init user repo: %v", err)
		}
		savedFundRepo, err = pgrepo.NewSavedFundRepository(pool)
		if err != nil {
			log.Fatalf("init saved fund repo: %v", err)
		}
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	} else {
		log.Print("DATABASE_URL не задан: используется память процесса, данные не переживут рестарт")
		userRepo = memrepo.NewUserRepository()
		savedFundRepo = memrepo.NewSavedFundRepository()
	}

	// Wire dependencies (Clean Architecture)
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewAuthService(userRepo, jwtGen)
	authHandler := handlers.NewAuthHandler(authUC)

	watchlistUC := watchlist.NewService(savedFundRepo)
	savedFundsHandler := handlers.NewSavedFundsHandler(watchlistUC)

	readiness := health.NewService(checkers...)
	healthHandler := handlers.NewHealthHandler(readiness)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	// Register routes
	http.Register(app, authHandler, savedFundsHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	port := cfg.Port
	log.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
