package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/adapters/cache"
	adapterHTTP "github.com/realmquest/engine/internal/adapters/handler/http"
	"github.com/realmquest/engine/internal/adapters/repository"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
	"github.com/realmquest/engine/internal/core/workers"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as is")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	serverPort := getenv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisDB, _ := strconv.Atoi(getenv("REDIS_DB", "0"))
	redisClient, err := cache.NewRedisClient(
		getenv("REDIS_HOST", "localhost"),
		getenv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Warning: Redis unavailable, running without cache and rate limiting: %v", err)
		redisClient = nil
	}

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	areaRepo := repository.NewPostgresAreaRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	archiveRepo := repository.NewPostgresArchiveRepository(db)
	resourceRepo := repository.NewPostgresResourceRepository(db)
	friendshipRepo := repository.NewPostgresFriendshipRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient)
	}

	clock := domain.RealClock()

	tokenService := services.NewTokenService(jwtSecret, "realmquest", 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, profileRepo, areaRepo)
	profileService := services.NewProfileService(profileRepo, areaRepo, userRepo)
	habitService := services.NewHabitService(habitRepo, areaRepo, profileService, clock)
	questService := services.NewQuestService(projectRepo, areaRepo, archiveRepo, profileService)
	areaService := services.NewAreaService(areaRepo)
	resourceService := services.NewResourceService(resourceRepo, archiveRepo)
	archiveService := services.NewArchiveService(archiveRepo)
	socialService := services.NewSocialService(friendshipRepo, notificationRepo, profileRepo, habitService)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	streakWorker := workers.NewStreakWorker(habitRepo, clock)
	streakWorker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		ProfileHandler:  adapterHTTP.NewProfileHandler(profileService, streakWorker),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		QuestHandler:    adapterHTTP.NewQuestHandler(questService),
		AreaHandler:     adapterHTTP.NewAreaHandler(areaService),
		ResourceHandler: adapterHTTP.NewResourceHandler(resourceService),
		ArchiveHandler:  adapterHTTP.NewArchiveHandler(archiveService),
		SocialHandler:   adapterHTTP.NewSocialHandler(socialService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("RealmQuest engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
