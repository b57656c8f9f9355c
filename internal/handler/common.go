// Package handler exposes the JSON endpoints of the listing site. Handlers
// bind and check input, call the repositories and shape their output
// through the projection package.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/projection"
	"github.com/Timmy-id/fyyur/internal/queue"
	"github.com/Timmy-id/fyyur/internal/repository"
	"github.com/Timmy-id/fyyur/internal/service"
)

// recentLimit is how many venues and artists the home page lists.
const recentLimit = 10

// ListingHandler bundles the repositories behind the venue, artist and show
// endpoints.
type ListingHandler struct {
	Venues    *repository.VenueRepo
	Artists   *repository.ArtistRepo
	Shows     *repository.ShowRepo
	Publisher service.Publisher
	Now       func() time.Time // reference time for past/upcoming splits
}

// NewListingHandler constructs a ListingHandler and panics if a repository
// is missing. A nil publisher drops events; a nil clock uses time.Now.
func NewListingHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, pub service.Publisher, now func() time.Time) *ListingHandler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil repository passed to NewListingHandler")
	}
	if pub == nil {
		pub = service.NoopPublisher{}
	}
	if now == nil {
		now = time.Now
	}
	return &ListingHandler{Venues: venues, Artists: artists, Shows: shows, Publisher: pub, Now: now}
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

// writeError maps repository and projection errors to HTTP responses.
func writeError(c echo.Context, err error) error {
	var re *repository.Error
	switch {
	case errors.Is(err, projection.ErrInvalidTimestamp):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	case errors.Is(err, repository.ErrValidation):
		body := echo.Map{"error": "validation failed"}
		if errors.As(err, &re) {
			body["message"] = re.Message
			if re.Field != "" {
				body["field"] = re.Field
			}
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// publish sends ev after a committed write. Failures are logged only.
func (h *ListingHandler) publish(c echo.Context, ev queue.ListingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 3*time.Second)
	defer cancel()
	if err := h.Publisher.Publish(ctx, ev); err != nil {
		log.Printf("publish %s id=%d: %v", ev.Type, ev.ID, err)
	}
}

type searchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term" query:"search_term"`
}
