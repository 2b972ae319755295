package router

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/adapter/api/handler"
	"trazot/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, actorMiddleware *middleware.ActorMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.SearchListings)
	listings.GET("/:id", listingHandler.GetListing, actorMiddleware.Bind)
	listings.POST("", listingHandler.CreateListing, actorMiddleware.Bind)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(actorMiddleware.Require)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("/:id/sold", listingHandler.MarkSold)
	myListings.POST("/:id/trash", listingHandler.TrashListing)
	myListings.POST("/:id/restore", listingHandler.RestoreListing)

	admin := e.Group("/v1/admin/listings")
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/pending", listingHandler.ListPending)
	admin.POST("/:id/approve", listingHandler.ApproveListing)
	admin.POST("/:id/reject", listingHandler.RejectListing)
	admin.POST("/:id/trash", listingHandler.TrashListing)
	admin.POST("/:id/restore", listingHandler.RestoreListing)
	admin.DELETE("/:id", listingHandler.PurgeListing)
	admin.GET("/:id", listingHandler.GetListing)
}
