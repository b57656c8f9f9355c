package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/handler"
)

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo, db *database.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the admin login. Tokens it issues unlock the
// routes added by RegisterAdmin.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/auth/login", a.Login)
}
