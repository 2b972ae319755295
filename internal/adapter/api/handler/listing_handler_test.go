package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/adapter/api"
	"trazot/internal/adapter/repository"
	"trazot/internal/domain/entity"
	"trazot/internal/usecase"
)

func newHandlerFixture(t *testing.T) (*echo.Echo, *ListingHandler, *repository.SQLiteStore) {
	t.Helper()

	store, err := repository.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.SaveListings(ctx, []entity.Listing{}))
	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "owner", Credits: 20, Country: "Pakistan"},
	}))

	credits := usecase.NewCreditUseCase(store, nil)
	listings := usecase.NewListingUseCase(store, credits, nil, nil)

	e := echo.New()
	e.Validator = api.NewValidator()
	return e, NewListingHandler(listings), store
}

func TestCreateListingHandler(t *testing.T) {
	e, h, _ := newHandlerFixture(t)

	body := `{
		"title": "Corolla 2020",
		"price": 2500000,
		"category": "vehicles",
		"purpose": "sale",
		"country": "Pakistan",
		"city": "Lahore"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "owner")

	require.NoError(t, h.CreateListing(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool           `json:"success"`
		Data    entity.Listing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, entity.StatusPending, envelope.Data.Status)
	assert.Equal(t, "owner", envelope.Data.UserID)
}

func TestCreateListingHandlerRejectsInvalidBody(t *testing.T) {
	e, h, _ := newHandlerFixture(t)

	// Missing title and an unknown category.
	body := `{"price": 100, "category": "gadgets", "purpose": "sale", "country": "Pakistan", "city": "Lahore"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "owner")

	require.NoError(t, h.CreateListing(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetListingHandlerHidesTrashFromStrangers(t *testing.T) {
	e, h, store := newHandlerFixture(t)

	require.NoError(t, store.SaveListings(context.Background(), []entity.Listing{
		{ID: "l1", Title: "Hidden", Status: entity.StatusTrashed, UserID: "owner"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/listings/l1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("l1")
	c.Set("uid", "stranger")

	require.NoError(t, h.GetListing(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheckHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthCheck(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
