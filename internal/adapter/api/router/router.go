package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

// Setup wires every route group onto the Echo instance.
func Setup(
	e *echo.Echo,
	listingHandler *handler.ListingHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	contentHandler *handler.ContentHandler,
	adminHandler *handler.AdminHandler,
	syncHandler *handler.SyncHandler,
	wsHandler *handler.WebSocketHandler,
	actorMiddleware *middleware.ActorMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	e.GET("/health", handler.HealthCheck)

	SetupListingRouter(e, listingHandler, actorMiddleware, adminMiddleware)
	SetupAuthRouter(e, authHandler)
	SetupUserRouter(e, userHandler, actorMiddleware)
	SetupMessageRouter(e, messageHandler, actorMiddleware)
	SetupContentRouter(e, contentHandler, actorMiddleware, adminMiddleware)
	SetupAdminRouter(e, adminHandler, syncHandler, adminMiddleware)
	SetupSyncRouter(e, syncHandler)
	SetupWebSocketRouter(e, wsHandler)
}
