package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"trazot/internal/adapter/api"
	"trazot/internal/adapter/api/handler"
	apimiddleware "trazot/internal/adapter/api/middleware"
	"trazot/internal/adapter/api/router"
	"trazot/internal/adapter/repository"
	"trazot/internal/infrastructure/events"
	"trazot/internal/infrastructure/optimizer"
	"trazot/internal/infrastructure/ratelimit"
	"trazot/internal/infrastructure/relay"
	"trazot/internal/infrastructure/websocket"
	"trazot/internal/usecase"
	"trazot/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()

	store, err := repository.NewSQLiteStore(cfg.DatabasePath, bus)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	relayClient := relay.NewClient(cfg.RelayURL, cfg.RelayTimeout)
	optimizerClient := optimizer.NewClient(cfg.OptimizerURL, 10*time.Second)

	limiter := ratelimit.NewGate(store, map[string]time.Duration{
		"send_message": 2 * time.Second,
	})

	wsManager := websocket.NewManager()
	wsManager.Start(ctx, bus)

	syncUseCase := usecase.NewSyncUseCase(store, relayClient, bus, cfg.SnapshotDomain, cfg.SnapshotVersion)
	creditUseCase := usecase.NewCreditUseCase(store, syncUseCase)
	userUseCase := usecase.NewUserUseCase(store, syncUseCase)
	listingUseCase := usecase.NewListingUseCase(store, creditUseCase, optimizerClient, syncUseCase)
	messageUseCase := usecase.NewMessageUseCase(store, userUseCase, limiter, syncUseCase)
	contentUseCase := usecase.NewContentUseCase(store, optimizerClient, syncUseCase)
	authUseCase := usecase.NewAuthUseCase(store, cfg.JWTSecret, cfg.JWTExpiry)

	if err := syncUseCase.Start(ctx, cfg.SyncInterval); err != nil {
		log.Fatalf("Failed to start sync scheduler: %v", err)
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	actorMiddleware := apimiddleware.NewActorMiddleware()
	adminMiddleware := apimiddleware.NewAdminMiddleware(authUseCase)

	listingHandler := handler.NewListingHandler(listingUseCase)
	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase, creditUseCase)
	messageHandler := handler.NewMessageHandler(messageUseCase)
	contentHandler := handler.NewContentHandler(contentUseCase)
	adminHandler := handler.NewAdminHandler(creditUseCase, userUseCase, store)
	syncHandler := handler.NewSyncHandler(syncUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e,
		listingHandler,
		authHandler,
		userHandler,
		messageHandler,
		contentHandler,
		adminHandler,
		syncHandler,
		wsHandler,
		actorMiddleware,
		adminMiddleware,
	)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
