package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/handler"
	"github.com/Timmy-id/fyyur/internal/middleware"
	"github.com/Timmy-id/fyyur/internal/utils"
)

// RegisterAdmin registers the write endpoints. Each requires a valid JWT
// with the ADMIN role; invalidate runs after the handler so a successful
// write drops cached pages.
func RegisterAdmin(e *echo.Echo, h *handler.ListingHandler, jwtSecret string, invalidate echo.MiddlewareFunc) {
	// Middlewares are attached per route; an empty-prefix group would also
	// guard unknown paths.
	admin := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
		invalidate,
	}

	// ---- Venues ----
	e.POST("/venues", h.CreateVenue, admin...)
	e.PUT("/venues/:id", h.UpdateVenue, admin...)
	e.DELETE("/venues/:id", h.DeleteVenue, admin...)

	// ---- Artists ----
	e.POST("/artists", h.CreateArtist, admin...)
	e.PUT("/artists/:id", h.UpdateArtist, admin...)
	e.DELETE("/artists/:id", h.DeleteArtist, admin...)

	// ---- Shows ----
	e.POST("/shows", h.CreateShow, admin...)
}
