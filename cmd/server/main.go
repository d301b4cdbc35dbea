package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traininglog/app/internal/api"
	"traininglog/app/internal/cache"
	"traininglog/app/internal/config"
	"traininglog/app/internal/repository"
	"traininglog/app/internal/repository/memory"
	"traininglog/app/internal/repository/mongo"
	"traininglog/app/internal/repository/remote"
	"traininglog/app/internal/service"
	"traininglog/app/internal/storage"

	"github.com/gin-gonic/gin"
)

// logNotifier surfaces save/failure toasts in the server log. In a real
// deployment this would push to the UI over a websocket or SSE channel.
type logNotifier struct{}

func (logNotifier) Notify(kind cache.NotifyKind, title, message string) {
	log.Printf("notify [%s] %s: %s", kind, title, message)
}

func main() {
	log.Println("Starting Training Log Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// The demo store is always built. In mock mode it is the primary backend;
	// in remote mode it serves as the read fallback so the UI stays populated
	// when the remote API is unreachable.
	demoStore := memory.NewStore(memory.Options{
		ReadDelay:  cfg.Store.ReadDelay,
		WriteDelay: cfg.Store.WriteDelay,
		Seeded:     true,
	})

	var (
		trainingRepo repository.TrainingRepository
		plannedRepo  repository.PlannedRepository
		userRepo     repository.UserRepository
		fileStorage  storage.FileStorage
		queryOpts    []cache.Option
	)
	queryOpts = append(queryOpts, cache.WithNotifier(logNotifier{}))

	if cfg.API.UseMock {
		log.Println("Backend: in-memory demo store")
		trainingRepo = demoStore.Trainings()
		plannedRepo = demoStore.Planned()
		userRepo = demoStore.Users()
	} else {
		log.Printf("Backend: remote API at %s", cfg.API.BaseURL)
		client := remote.NewClient(cfg.API.BaseURL, func() string { return cfg.API.Token })
		trainingRepo = client.Trainings()
		plannedRepo = client.Planned()
		queryOpts = append(queryOpts, cache.WithFallback(demoStore.Trainings(), demoStore.Planned()))

		// --- Database Connection ---
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
			log.Println("Index creation process completed.")
		}()

		userRepo = mongo.NewMongoUserRepository(appDB)

		// --- Initialize Storage ---
		log.Println("Initializing file storage service...")
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainingService := service.NewTrainingService(trainingRepo)
	plannedService := service.NewPlannedService(plannedRepo)
	weekPlanService := service.NewWeekPlanService(demoStore.WeekPlan(), nil)
	coachService := service.NewCoachService(userRepo, plannedRepo, nil)
	queries := cache.NewQueries(trainingService, plannedService, queryOpts...)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, queries, weekPlanService, coachService, fileStorage)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
