package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, actorMiddleware *middleware.ActorMiddleware) {
	users := e.Group("/v1/users")
	users.POST("", userHandler.Register)
	users.GET("/:id", userHandler.GetUser)

	me := e.Group("/v1/me")
	me.Use(actorMiddleware.Require)
	me.GET("/credits", userHandler.GetBalance)
}
