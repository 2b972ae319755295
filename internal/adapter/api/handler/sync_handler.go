package handler

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/usecase"
	"trazot/pkg/response"
)

type SyncHandler struct {
	syncUseCase *usecase.SyncUseCase
}

func NewSyncHandler(syncUseCase *usecase.SyncUseCase) *SyncHandler {
	return &SyncHandler{
		syncUseCase: syncUseCase,
	}
}

// Status feeds the passive sync badge in the UI.
func (h *SyncHandler) Status(c echo.Context) error {
	health := h.syncUseCase.Health(c.Request().Context())
	return response.Success(c, map[string]interface{}{
		"sync":  h.syncUseCase.Status(),
		"relay": health,
	})
}

// TriggerSync runs one reconciliation cycle on demand.
func (h *SyncHandler) TriggerSync(c echo.Context) error {
	status := h.syncUseCase.Sync(c.Request().Context())
	return response.Success(c, map[string]interface{}{"sync": status})
}
