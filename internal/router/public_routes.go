package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/handler"
)

// RegisterPublic registers the browse and search endpoints. cache wraps
// every GET; searches submitted by POST are never cached.
func RegisterPublic(e *echo.Echo, h *handler.ListingHandler, cache echo.MiddlewareFunc) {
	e.GET("/", h.Home, cache)

	// ---- Venues ----
	e.GET("/venues", h.ListVenues, cache)
	e.GET("/venues/search", h.SearchVenues, cache)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/:id", h.GetVenue, cache)

	// ---- Artists ----
	e.GET("/artists", h.ListArtists, cache)
	e.GET("/artists/search", h.SearchArtists, cache)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/:id", h.GetArtist, cache)

	// ---- Shows ----
	e.GET("/shows", h.ListShows, cache)
}
