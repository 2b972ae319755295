package handler

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/usecase"
	"trazot/pkg/response"
)

type ContentHandler struct {
	contentUseCase *usecase.ContentUseCase
}

func NewContentHandler(contentUseCase *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
	}
}

type createArticleRequest struct {
	Title           string   `json:"title" validate:"required"`
	Content         string   `json:"content" validate:"required"`
	MetaDescription string   `json:"meta_description"`
	Tags            []string `json:"tags"`
	Image           string   `json:"image"`
	Category        string   `json:"category" validate:"required,oneof=market guides announcements community"`
	Author          string   `json:"author" validate:"required"`
}

func (h *ContentHandler) CreateArticle(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	article, err := h.contentUseCase.CreateArticle(c.Request().Context(), usecase.CreateArticleInput{
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		Tags:            req.Tags,
		Image:           req.Image,
		Category:        req.Category,
		Author:          req.Author,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, article)
}

func (h *ContentHandler) ListNews(c echo.Context) error {
	news, err := h.contentUseCase.ListNews(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, news)
}

func (h *ContentHandler) GetArticle(c echo.Context) error {
	article, err := h.contentUseCase.GetArticleBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, article)
}

func (h *ContentHandler) DeleteArticle(c echo.Context) error {
	if err := h.contentUseCase.DeleteArticle(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}

type createDealerRequest struct {
	Name        string   `json:"name" validate:"required"`
	Phone       string   `json:"phone"`
	City        string   `json:"city" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Specialties []string `json:"specialties"`
}

func (h *ContentHandler) CreateDealer(c echo.Context) error {
	var req createDealerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	dealer, err := h.contentUseCase.CreateDealer(c.Request().Context(), usecase.CreateDealerInput{
		Name:        req.Name,
		Phone:       req.Phone,
		City:        req.City,
		Country:     req.Country,
		Specialties: req.Specialties,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, dealer)
}

func (h *ContentHandler) ListDealers(c echo.Context) error {
	dealers, err := h.contentUseCase.ListDealers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dealers)
}

func (h *ContentHandler) DeleteDealer(c echo.Context) error {
	if err := h.contentUseCase.DeleteDealer(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}

type createPromotionRequest struct {
	Title     string `json:"title" validate:"required"`
	Developer string `json:"developer" validate:"required"`
	City      string `json:"city" validate:"required"`
	Image     string `json:"image"`
}

func (h *ContentHandler) CreatePromotion(c echo.Context) error {
	var req createPromotionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	promotion, err := h.contentUseCase.CreatePromotion(c.Request().Context(), usecase.CreatePromotionInput{
		Title:     req.Title,
		Developer: req.Developer,
		City:      req.City,
		Image:     req.Image,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, promotion)
}

func (h *ContentHandler) ListPromotions(c echo.Context) error {
	promotions, err := h.contentUseCase.ListPromotions(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, promotions)
}

func (h *ContentHandler) DeletePromotion(c echo.Context) error {
	if err := h.contentUseCase.DeletePromotion(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}

type createSavedSearchRequest struct {
	Name     string `json:"name" validate:"required"`
	Query    string `json:"query"`
	Category string `json:"category"`
	Country  string `json:"country"`
}

func (h *ContentHandler) CreateSavedSearch(c echo.Context) error {
	var req createSavedSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	search, err := h.contentUseCase.CreateSavedSearch(c.Request().Context(), userID, usecase.CreateSavedSearchInput{
		Name:     req.Name,
		Query:    req.Query,
		Category: req.Category,
		Country:  req.Country,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, search)
}

func (h *ContentHandler) ListSavedSearches(c echo.Context) error {
	userID := c.Get("uid").(string)

	searches, err := h.contentUseCase.ListSavedSearches(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, searches)
}

func (h *ContentHandler) DeleteSavedSearch(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.contentUseCase.DeleteSavedSearch(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *ContentHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.contentUseCase.Subscribe(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]string{"status": "subscribed"})
}
