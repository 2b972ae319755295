package handler

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/usecase"
	"trazot/pkg/response"
)

type UserHandler struct {
	userUseCase   *usecase.UserUseCase
	creditUseCase *usecase.CreditUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, creditUseCase *usecase.CreditUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		creditUseCase: creditUseCase,
	}
}

type registerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Country string `json:"country" validate:"required"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Register(c.Request().Context(), usecase.RegisterUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Country: req.Country,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) GetBalance(c echo.Context) error {
	actorID := c.Get("uid").(string)

	balance, err := h.creditUseCase.Balance(c.Request().Context(), actorID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"credits": balance})
}
