package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler) {
	auth := e.Group("/v1/admin/auth")
	auth.GET("/status", authHandler.Status)
	auth.POST("/setup", authHandler.Setup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/reset", authHandler.Reset)
}
