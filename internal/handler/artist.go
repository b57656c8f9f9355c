package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/model"
	"github.com/Timmy-id/fyyur/internal/projection"
	"github.com/Timmy-id/fyyur/internal/queue"
)

// ListArtists returns every artist as {id, name}.
func (h *ListingHandler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	type artistRow struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	out := make([]artistRow, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistRow{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": out})
}

func (h *ListingHandler) SearchArtists(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	matches, err := h.Artists.Search(ctx, req.SearchTerm)
	if err != nil {
		return writeError(c, err)
	}
	ids := make([]int64, 0, len(matches))
	for _, a := range matches {
		ids = append(ids, a.ID)
	}
	shows, err := h.Shows.ForArtists(ctx, ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results":     projection.BuildSearchResponse(matches, shows, h.Now()),
		"search_term": req.SearchTerm,
	})
}

// GetArtist returns the artist page with its past and upcoming shows.
func (h *ListingHandler) GetArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	shows, err := h.Shows.ForArtist(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, projection.BuildArtistDetail(a, shows, h.Now()))
}

func (h *ListingHandler) CreateArtist(c echo.Context) error {
	var f model.ArtistFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Artists.Create(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.ArtistCreated, a.ID, a.Name, h.Now()))
	return c.JSON(http.StatusCreated, a)
}

func (h *ListingHandler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var f model.ArtistFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Artists.Update(c.Request().Context(), id, f)
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.ArtistUpdated, a.ID, a.Name, h.Now()))
	return c.JSON(http.StatusOK, a)
}

func (h *ListingHandler) DeleteArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.ArtistDeleted, id, "", h.Now()))
	return c.NoContent(http.StatusNoContent)
}
