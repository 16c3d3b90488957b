package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carrentapp/carrent/internal/gateway"
	"github.com/carrentapp/carrent/internal/middleware"
	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/pricing"
	"github.com/carrentapp/carrent/internal/reservation"
	"github.com/carrentapp/carrent/internal/session"
)

// ReservationService defines the wizard and bookings operations required by
// the HTTP handlers.
type ReservationService interface {
	Open(ctx context.Context, sid string, user models.User, vehicleID int64) (*reservation.Machine, error)
	Machine(sid string) (*reservation.Machine, bool)
	Discard(sid string)
	Submit(ctx context.Context, sid string) (*reservation.Machine, error)
	Bookings(ctx context.Context, clientID int64) ([]models.ReservationSummary, error)
	Cancel(ctx context.Context, id int64) error
}

// ReservationHandler drives the reservation wizard over HTTP. Every route
// here sits behind the client role guard.
type ReservationHandler struct {
	Reservations ReservationService
	Bridge       *session.Bridge
}

// wizardView is the wizard state returned after every interaction.
type wizardView struct {
	DraftID string            `json:"draft_id"`
	State   reservation.State `json:"state"`
	Vehicle models.Vehicle    `json:"vehicle"`
	Draft   reservation.Draft `json:"draft"`
	Quote   pricing.Breakdown `json:"quote"`
}

func viewOf(m *reservation.Machine) wizardView {
	return wizardView{
		DraftID: m.ID(),
		State:   m.State(),
		Vehicle: m.Vehicle(),
		Draft:   m.Draft(),
		Quote:   m.Quote(),
	}
}

// Open handles GET /reservation/{vehicleID}: it opens a fresh wizard for the
// vehicle or resumes the session's in-progress one. A stale vehicle id sends
// the user back to the catalogue with a notice.
func (h *ReservationHandler) Open(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	sid := middleware.GetSessionID(r.Context())
	user, _ := middleware.GetUserFromContext(r.Context())

	m, err := h.Reservations.Open(r.Context(), sid, user, vehicleID)
	if errors.Is(err, gateway.ErrNotFound) {
		h.Bridge.SetNotice(sid, "This vehicle is no longer available")
		http.Redirect(w, r, session.CataloguePath, http.StatusFound)
		return
	}
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewOf(m))
}

// machine fetches the session's wizard or reports that none is open.
func (h *ReservationHandler) machine(w http.ResponseWriter, r *http.Request) (*reservation.Machine, bool) {
	sid := middleware.GetSessionID(r.Context())
	m, ok := h.Reservations.Machine(sid)
	if !ok {
		writeError(w, http.StatusNotFound, "no reservation in progress")
	}
	return m, ok
}

// UpdateField handles POST /reservation/field with {"name": ..., "value": ...}.
// Date fields accept 2006-01-02 values; an empty value clears the date.
func (h *ReservationHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "field name is required")
		return
	}

	switch req.Name {
	case "startDate", "endDate":
		var t time.Time
		if req.Value != "" {
			parsed, err := time.Parse("2006-01-02", req.Value)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "dates must be YYYY-MM-DD")
				return
			}
			t = parsed
		}
		d := m.Draft()
		if req.Name == "startDate" {
			m.SetDates(t, d.EndDate)
		} else {
			m.SetDates(d.StartDate, t)
		}
	case "insurance":
		m.SetInsurance(pricing.InsuranceTier(req.Value))
	default:
		if err := m.UpdateField(req.Name, req.Value); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, viewOf(m))
}

// ToggleExtra handles POST /reservation/extra with {"extra": ...}.
func (h *ReservationHandler) ToggleExtra(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	var req struct {
		Extra string `json:"extra"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Extra == "" {
		writeError(w, http.StatusBadRequest, "extra is required")
		return
	}

	m.ToggleExtra(pricing.Extra(req.Extra))
	writeJSON(w, http.StatusOK, viewOf(m))
}

// Next handles POST /reservation/next. A failed guard keeps the wizard in
// place and reports the validation message inline.
func (h *ReservationHandler) Next(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	if err := m.Next(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(m))
}

// Back handles POST /reservation/back.
func (h *ReservationHandler) Back(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	if err := m.Back(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(m))
}

// Submit handles POST /reservation/submit. Local guard failures are
// validation errors; a backend rejection or transport failure leaves the
// wizard in Failed with the draft preserved, and the in-flight guard turns
// a repeated click into a conflict instead of a second booking.
func (h *ReservationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid := middleware.GetSessionID(r.Context())

	m, err := h.Reservations.Submit(r.Context(), sid)
	switch {
	case err == nil:
		h.Reservations.Discard(sid)
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "confirmed",
			"view":   viewOf(m),
		})
	case errors.Is(err, reservation.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, reservation.ErrContactRequired),
		errors.Is(err, reservation.ErrCardRequired),
		errors.Is(err, reservation.ErrNotAtPayment):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case m == nil:
		writeError(w, http.StatusNotFound, "no reservation in progress")
	default:
		writeGatewayError(w, err)
	}
}

// Retry handles POST /reservation/retry after a failed submission.
func (h *ReservationHandler) Retry(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	if err := m.Retry(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(m))
}

// Bookings handles GET /bookings.
func (h *ReservationHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	list, err := h.Reservations.Bookings(r.Context(), user.ID)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": list, "count": len(list)})
}

// Cancel handles POST /bookings/{id}/cancel.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.Reservations.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reservation not found")
			return
		}
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
