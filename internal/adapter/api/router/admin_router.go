package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, syncHandler *handler.SyncHandler, adminMiddleware *middleware.AdminMiddleware) {
	admin := e.Group("/v1/admin")
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/credits", adminHandler.GrantCredits)
	admin.POST("/credits/bulk-grant", adminHandler.BulkGrant)
	admin.GET("/security-log", adminHandler.SecurityLog)
	admin.POST("/sync", syncHandler.TriggerSync)
}
