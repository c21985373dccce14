package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"family-backend/internal/auth"
	"family-backend/internal/config"
	"family-backend/internal/database"
	"family-backend/internal/db"
	"family-backend/internal/handlers"
	"family-backend/internal/health"
	h "family-backend/internal/http"
	"family-backend/internal/metrics"
	"family-backend/internal/middleware"
	"family-backend/internal/repositories"
	"family-backend/internal/services"
	"family-backend/internal/storage"
	"family-backend/internal/timeutil"
	"family-backend/internal/ws"
	"family-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrate := flag.Bool("migrate", true, "Run schema migrations on startup")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx := context.Background()

	if *migrate {
		migrator := database.NewMigrator(pool, migrations.FS)
		if err := migrator.RunMigrations(ctx); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
	}

	jwtManager := auth.NewJWTManager(cfg)
	clock := timeutil.Real()

	objectStore, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Object storage init failed: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	memberRepo := repositories.NewFamilyMemberRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	galleryRepo := repositories.NewGalleryRepository(pool)
	chatRepo := repositories.NewChatRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	wishRepo := repositories.NewWishRepository(pool)

	// Websocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	memberService := services.NewFamilyMemberService(memberRepo, objectStore)
	occasionService := services.NewOccasionService(memberRepo, eventRepo, clock)
	activityService := services.NewActivityService(memberRepo, clock)
	eventService := services.NewEventService(eventRepo, notificationRepo)
	galleryService := services.NewGalleryService(galleryRepo, objectStore, clock)
	chatService := services.NewChatService(chatRepo, memberRepo, hub, clock)
	notificationService := services.NewNotificationService(notificationRepo)
	wishService := services.NewWishService(wishRepo, memberRepo, notificationRepo, clock)
	dashboardService := services.NewDashboardService(memberRepo, userRepo, eventRepo,
		galleryRepo, notificationRepo, occasionService, clock)

	chatService.StartSweeper(ctx)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewFamilyMemberHandler(memberService)
	eventHandler := handlers.NewEventHandler(eventService)
	calendarHandler := handlers.NewCalendarHandler(occasionService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	chatHandler := handlers.NewChatHandler(chatService, hub)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wishHandler := handlers.NewWishHandler(wishService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	monitoringHandler := handlers.NewMonitoringHandler(health.NewHealthChecker(pool))

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	activityMiddleware := middleware.NewActivityMiddleware(activityService)
	corsMiddleware := middleware.NewCORS(cfg)
	httpMetrics := metrics.New()

	router := h.NewRouter(
		authHandler,
		userHandler,
		memberHandler,
		eventHandler,
		calendarHandler,
		galleryHandler,
		chatHandler,
		notificationHandler,
		wishHandler,
		dashboardHandler,
		monitoringHandler,
		authMiddleware,
		activityMiddleware,
		httpMetrics,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Family backend listening on %s", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(router)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
