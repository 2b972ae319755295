package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
)

func SetupSyncRouter(e *echo.Echo, syncHandler *handler.SyncHandler) {
	e.GET("/v1/sync/status", syncHandler.Status)
}
