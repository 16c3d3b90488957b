package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carrentapp/carrent/internal/catalogue"
	"github.com/carrentapp/carrent/internal/gateway"
	"github.com/carrentapp/carrent/internal/middleware"
	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/service"
	"github.com/carrentapp/carrent/internal/session"
)

// CatalogueService defines the catalogue reads required by the HTTP
// handlers.
type CatalogueService interface {
	Browse(ctx context.Context, spec models.FilterSpec) (*service.CatalogueView, error)
	Vehicle(ctx context.Context, id int64) (*catalogue.Result, error)
}

// CatalogueHandler serves the vehicle list and details.
type CatalogueHandler struct {
	Catalogue CatalogueService
	Bridge    *session.Bridge
}

// List handles GET /catalogue. Filters arrive as query parameters;
// unrecognized or malformed values fall back to the neutral filter rather
// than failing the page.
func (h *CatalogueHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.Catalogue.Browse(r.Context(), parseFilterSpec(r))
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	sid := middleware.GetSessionID(r.Context())
	resp := map[string]any{
		"vehicles": view.Vehicles,
		"count":    view.Count,
		"brands":   view.Brands,
		"cities":   view.Cities,
	}
	if notice, ok := h.Bridge.TakeNotice(sid); ok {
		resp["notice"] = notice
	}
	writeJSON(w, http.StatusOK, resp)
}

// Details handles GET /car/{id}. A vehicle the backend no longer knows
// about sends the user back to the catalogue with a notice.
func (h *CatalogueHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	result, err := h.Catalogue.Vehicle(r.Context(), id)
	if errors.Is(err, gateway.ErrNotFound) {
		sid := middleware.GetSessionID(r.Context())
		h.Bridge.SetNotice(sid, "This vehicle is no longer available")
		http.Redirect(w, r, session.CataloguePath, http.StatusFound)
		return
	}
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseFilterSpec reads the recognized filter options from the query
// string.
func parseFilterSpec(r *http.Request) models.FilterSpec {
	q := r.URL.Query()
	spec := models.NewFilterSpec()

	if v := q.Get("availability"); v != "" {
		spec.Availability = v
	}
	if v := q.Get("location"); v != "" {
		spec.Location = v
	}
	spec.Brand = q.Get("brand")
	spec.Seats = q.Get("seats")
	spec.Gearbox = q.Get("gearbox")
	spec.Fuel = q.Get("fuel")
	spec.PriceSort = q.Get("priceSort")

	if n, err := strconv.Atoi(q.Get("priceMin")); err == nil {
		spec.PriceMin = &n
	}
	if n, err := strconv.Atoi(q.Get("priceMax")); err == nil {
		spec.PriceMax = &n
	}
	if t, err := time.Parse("2006-01-02", q.Get("dateFrom")); err == nil {
		spec.DateFrom = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("dateTo")); err == nil {
		spec.DateTo = t
	}

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		spec.UserCoords = &models.Coordinates{Lat: lat, Lng: lng}
	}
	if radius, err := strconv.ParseFloat(q.Get("radiusKm"), 64); err == nil {
		spec.RadiusKm = radius
	}

	return spec
}
