package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/model"
	"github.com/Timmy-id/fyyur/internal/projection"
	"github.com/Timmy-id/fyyur/internal/queue"
)

type showRequest struct {
	ArtistID  int64  `json:"artist_id" form:"artist_id"`
	VenueID   int64  `json:"venue_id" form:"venue_id"`
	StartTime string `json:"start_time" form:"start_time"` // empty means now
}

// ListShows returns the shows page ordered by start time.
func (h *ListingHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": projection.FormatShowRows(shows)})
}

func (h *ListingHandler) CreateShow(c echo.Context) error {
	var req showRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var start time.Time
	if strings.TrimSpace(req.StartTime) != "" {
		t, err := projection.ParseStartTime(req.StartTime)
		if err != nil {
			return writeError(c, err)
		}
		start = t
	}
	s, err := h.Shows.Create(c.Request().Context(), model.ShowInput{
		ArtistID:  req.ArtistID,
		VenueID:   req.VenueID,
		StartTime: start,
	})
	if err != nil {
		return writeError(c, err)
	}

	ev := queue.NewListingEvent(queue.ShowCreated, s.ID, "", h.Now())
	ev.VenueID, ev.ArtistID, ev.StartTime = s.VenueID, s.ArtistID, projection.FormatTime(s.StartTime)
	h.publish(c, ev)

	return c.JSON(http.StatusCreated, echo.Map{
		"id":         s.ID,
		"venue_id":   s.VenueID,
		"artist_id":  s.ArtistID,
		"start_time": projection.FormatTime(s.StartTime),
	})
}
