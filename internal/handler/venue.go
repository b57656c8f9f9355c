package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Timmy-id/fyyur/internal/model"
	"github.com/Timmy-id/fyyur/internal/projection"
	"github.com/Timmy-id/fyyur/internal/queue"
)

// ListVenues returns the venues page: venues grouped by city and state with
// their upcoming show counts.
func (h *ListingHandler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	groups, err := h.Venues.GroupByCityState(ctx)
	if err != nil {
		return writeError(c, err)
	}
	var ids []int64
	for _, g := range groups {
		for _, v := range g.Venues {
			ids = append(ids, v.ID)
		}
	}
	shows, err := h.Shows.ForVenues(ctx, ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": projection.BuildAreas(groups, shows, h.Now())})
}

// SearchVenues serves both GET ?search_term= and POST form/JSON bodies.
func (h *ListingHandler) SearchVenues(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	matches, err := h.Venues.Search(ctx, req.SearchTerm)
	if err != nil {
		return writeError(c, err)
	}
	ids := make([]int64, 0, len(matches))
	for _, v := range matches {
		ids = append(ids, v.ID)
	}
	shows, err := h.Shows.ForVenues(ctx, ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results":     projection.BuildSearchResponse(matches, shows, h.Now()),
		"search_term": req.SearchTerm,
	})
}

// GetVenue returns the venue page with its past and upcoming shows.
func (h *ListingHandler) GetVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	shows, err := h.Shows.ForVenue(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, projection.BuildVenueDetail(v, shows, h.Now()))
}

func (h *ListingHandler) CreateVenue(c echo.Context) error {
	var f model.VenueFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	v, err := h.Venues.Create(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.VenueCreated, v.ID, v.Name, h.Now()))
	return c.JSON(http.StatusCreated, v)
}

// UpdateVenue replaces every editable field; omitted fields are cleared.
func (h *ListingHandler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var f model.VenueFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	v, err := h.Venues.Update(c.Request().Context(), id, f)
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.VenueUpdated, v.ID, v.Name, h.Now()))
	return c.JSON(http.StatusOK, v)
}

func (h *ListingHandler) DeleteVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.NewListingEvent(queue.VenueDeleted, id, "", h.Now()))
	return c.NoContent(http.StatusNoContent)
}
