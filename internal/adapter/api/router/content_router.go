package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

func SetupContentRouter(e *echo.Echo, contentHandler *handler.ContentHandler, actorMiddleware *middleware.ActorMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	news := e.Group("/v1/news")
	news.GET("", contentHandler.ListNews)
	news.GET("/:slug", contentHandler.GetArticle)

	e.GET("/v1/dealers", contentHandler.ListDealers)
	e.GET("/v1/promotions", contentHandler.ListPromotions)
	e.POST("/v1/newsletter", contentHandler.Subscribe)

	searches := e.Group("/v1/saved-searches")
	searches.Use(actorMiddleware.Require)
	searches.GET("", contentHandler.ListSavedSearches)
	searches.POST("", contentHandler.CreateSavedSearch)
	searches.DELETE("/:id", contentHandler.DeleteSavedSearch)

	admin := e.Group("/v1/admin/content")
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("/news", contentHandler.CreateArticle)
	admin.DELETE("/news/:id", contentHandler.DeleteArticle)
	admin.POST("/dealers", contentHandler.CreateDealer)
	admin.DELETE("/dealers/:id", contentHandler.DeleteDealer)
	admin.POST("/promotions", contentHandler.CreatePromotion)
	admin.DELETE("/promotions/:id", contentHandler.DeletePromotion)
}
