package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/projection"
)

// Home lists the most recently added venues and artists.
func (h *ListingHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.Recent(ctx, recentLimit)
	if err != nil {
		return writeError(c, err)
	}
	artists, err := h.Artists.Recent(ctx, recentLimit)
	if err != nil {
		return writeError(c, err)
	}

	venueIDs := make([]int64, 0, len(venues))
	for _, v := range venues {
		venueIDs = append(venueIDs, v.ID)
	}
	artistIDs := make([]int64, 0, len(artists))
	for _, a := range artists {
		artistIDs = append(artistIDs, a.ID)
	}
	venueShows, err := h.Shows.ForVenues(ctx, venueIDs)
	if err != nil {
		return writeError(c, err)
	}
	artistShows, err := h.Shows.ForArtists(ctx, artistIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, projection.BuildHome(venues, artists, venueShows, artistShows, h.Now()))
}
