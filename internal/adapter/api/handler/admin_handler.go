package handler

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/domain/repository"
	"trazot/internal/usecase"
	"trazot/pkg/response"
)

// AdminHandler covers ledger grants and the security log.
type AdminHandler struct {
	creditUseCase *usecase.CreditUseCase
	userUseCase   *usecase.UserUseCase
	store         repository.Store
}

func NewAdminHandler(creditUseCase *usecase.CreditUseCase, userUseCase *usecase.UserUseCase, store repository.Store) *AdminHandler {
	return &AdminHandler{
		creditUseCase: creditUseCase,
		userUseCase:   userUseCase,
		store:         store,
	}
}

type grantRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

func (h *AdminHandler) GrantCredits(c echo.Context) error {
	var req grantRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.creditUseCase.Credit(c.Request().Context(), c.Param("id"), req.Amount); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "granted"})
}

func (h *AdminHandler) BulkGrant(c echo.Context) error {
	count, err := h.creditUseCase.BulkGrant(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"users_granted": count})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *AdminHandler) SecurityLog(c echo.Context) error {
	events, err := h.store.SecurityEvents(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, events)
}
