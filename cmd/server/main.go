package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindmate-backend/internal/config"
	"mindmate-backend/internal/database"
	"mindmate-backend/internal/handlers"
	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/repository"
	"mindmate-backend/internal/router"
	"mindmate-backend/internal/services"
	"mindmate-backend/internal/storage"
	"mindmate-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting MindMate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	chatDocRepo := repository.NewChatDocumentRepo(pool)

	// ──── Step 5: Select Chat Generator ────
	// The Gemini key never leaves the server; clients only ever see replies.
	var generator services.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		generator = gemini
		log.Println("✓ Gemini Flash generator initialized")
	} else {
		generator = services.NewEchoGenerator()
		log.Println("✓ No Gemini key set, using local echo generator")
	}

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	store := storage.NewRedisStore(redisClients.KV)
	publisher := services.NewRedisPublisher(redisClients.PubSub)

	authService := services.NewAuthService(userRepo, redisClients.KV, jwtAuth)
	activityService := services.NewActivityService(store)
	chatService := services.NewChatService(store, generator, chatDocRepo)
	breathingService := services.NewBreathingService(publisher)
	breathingService.SetTickInterval(time.Duration(cfg.ExerciseTickMillis) * time.Millisecond)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	activityHandler := handlers.NewActivityHandler(activityService, publisher)
	dashboardHandler := handlers.NewDashboardHandler(activityService)
	chatHandler := handlers.NewChatHandler(chatService)
	exerciseHandler := handlers.NewExerciseHandler(breathingService)
	userHandler := handlers.NewUserHandler(authService, store)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		activityHandler,
		dashboardHandler,
		chatHandler,
		exerciseHandler,
		userHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		breathingService.StopAll()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MindMate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
