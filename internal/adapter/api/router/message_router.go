package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, actorMiddleware *middleware.ActorMiddleware) {
	messages := e.Group("/v1/messages")
	messages.Use(actorMiddleware.Require)
	messages.POST("", messageHandler.SendMessage)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/thread/:counterpartId/:listingId", messageHandler.GetThread)
}
