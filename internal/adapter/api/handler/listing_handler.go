package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"trazot/internal/domain/entity"
	"trazot/internal/usecase"
	"trazot/pkg/response"
	"trazot/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Description  string                 `json:"description"`
	Price        int                    `json:"price" validate:"required,gt=0"`
	Currency     string                 `json:"currency"`
	Category     string                 `json:"category" validate:"required,oneof=properties vehicles electronics general"`
	Purpose      string                 `json:"purpose" validate:"required,oneof=sale rent wanted"`
	Images       []string               `json:"images"`
	Country      string                 `json:"country" validate:"required"`
	City         string                 `json:"city" validate:"required"`
	Society      string                 `json:"society"`
	Lat          float64                `json:"lat"`
	Lng          float64                `json:"lng"`
	ContactName  string                 `json:"contact_name"`
	ContactPhone string                 `json:"contact_phone"`
	ContactEmail string                 `json:"contact_email"`
	Details      map[string]interface{} `json:"details"`
	Featured     bool                   `json:"featured"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), actorID, usecase.CreateListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		Category:     req.Category,
		Purpose:      req.Purpose,
		Images:       req.Images,
		Location:     entity.Location{Country: req.Country, City: req.City, Society: req.Society, Lat: req.Lat, Lng: req.Lng},
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Details:      req.Details,
		Featured:     req.Featured,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	viewer := viewerFromContext(c)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	minPrice, _ := strconv.Atoi(c.QueryParam("min_price"))
	maxPrice, _ := strconv.Atoi(c.QueryParam("max_price"))

	filter := usecase.ListingFilter{
		Category: c.QueryParam("category"),
		Purpose:  c.QueryParam("purpose"),
		Country:  c.QueryParam("country"),
		City:     c.QueryParam("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Query:    c.QueryParam("q"),
	}
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.Search(c.Request().Context(), filter, pagination)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	actorID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListByOwner(c.Request().Context(), actorID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ListingHandler) ListPending(c echo.Context) error {
	listings, err := h.listingUseCase.ListPending(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ListingHandler) ApproveListing(c echo.Context) error {
	listing, err := h.listingUseCase.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) RejectListing(c echo.Context) error {
	listing, err := h.listingUseCase.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	listing, err := h.listingUseCase.MarkSold(c.Request().Context(), c.Param("id"), viewerFromContext(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) TrashListing(c echo.Context) error {
	listing, err := h.listingUseCase.Trash(c.Request().Context(), c.Param("id"), viewerFromContext(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) RestoreListing(c echo.Context) error {
	listing, err := h.listingUseCase.Restore(c.Request().Context(), c.Param("id"), viewerFromContext(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) PurgeListing(c echo.Context) error {
	if err := h.listingUseCase.Purge(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "purged"})
}

func viewerFromContext(c echo.Context) usecase.Viewer {
	viewer := usecase.Viewer{}
	if uid, ok := c.Get("uid").(string); ok {
		viewer.UserID = uid
	}
	if admin, ok := c.Get("admin").(bool); ok {
		viewer.Admin = admin
	}
	return viewer
}
