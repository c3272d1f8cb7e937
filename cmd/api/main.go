package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/api"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/router"
	"github.com/forkful/backend/internal/server"
	"github.com/forkful/backend/internal/service"
)

func main() {
	// Configuration errors are deployment defects; fail before serving.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}
	if err := s3Config.SetupBucketPolicy(ctx); err != nil {
		// Recipe images are served straight from the bucket, so reads must
		// be public. Startup continues; uploads will still work.
		log.Printf("Warning: failed to apply bucket policy: %v", err)
	}

	// Services
	mailer := service.NewEmailService(cfg)
	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret, cfg.SiteURL, mailer)
	cache := service.NewViewCache(redisClient, time.Minute)
	recipeService := service.NewRecipeService(db, cache)
	profileService := service.NewProfileService(db)
	imageService := service.NewImageService(s3Config)

	uploadLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "ratelimit:uploads",
	})

	// Handlers
	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, cache)
	profileHandler := api.NewProfileHandler(profileService, authService)
	imageHandler := api.NewImageHandler(imageService, authService, uploadLimiter)

	engine := router.SetupRouter(cfg.SiteURL, authHandler, recipeHandler, profileHandler, imageHandler)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
