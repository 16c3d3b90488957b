package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carrentapp/carrent/internal/gateway"
	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/reservation"
	"github.com/carrentapp/carrent/internal/session"
)

// fakeReservationService implements ReservationService around a single
// in-memory machine, standing in for the session-keyed service.
type fakeReservationService struct {
	machine   *reservation.Machine
	openErr   error
	submitErr error
	bookings  []models.ReservationSummary
	cancelErr error
	discarded bool
	cancelled []int64
}

func (f *fakeReservationService) Open(ctx context.Context, sid string, user models.User, vehicleID int64) (*reservation.Machine, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.machine, nil
}

func (f *fakeReservationService) Machine(sid string) (*reservation.Machine, bool) {
	return f.machine, f.machine != nil
}

func (f *fakeReservationService) Discard(sid string) { f.discarded = true }

func (f *fakeReservationService) Submit(ctx context.Context, sid string) (*reservation.Machine, error) {
	return f.machine, f.submitErr
}

func (f *fakeReservationService) Bookings(ctx context.Context, clientID int64) ([]models.ReservationSummary, error) {
	return f.bookings, nil
}

func (f *fakeReservationService) Cancel(ctx context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func testVehicle() models.Vehicle {
	return models.Vehicle{
		ID:            42,
		Make:          "Dacia",
		Model:         "Logan",
		DailyRate:     320,
		Available:     true,
		AgencyAddress: "12 Avenue Hassan II, Casablanca",
	}
}

func newReservationHandler(svc *fakeReservationService) *ReservationHandler {
	return &ReservationHandler{
		Reservations: svc,
		Bridge:       session.NewBridge(session.NewMemoryStore()),
	}
}

func decodeView(t *testing.T, body *bytes.Buffer) wizardView {
	t.Helper()
	var v wizardView
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		t.Fatalf("failed to decode wizard view: %v", err)
	}
	return v
}

func TestReservationHandler_Open(t *testing.T) {
	tests := []struct {
		name         string
		vehicleID    string
		service      *fakeReservationService
		expectedCode int
		wantLocation string
	}{
		{
			name:         "bad id",
			vehicleID:    "abc",
			service:      &fakeReservationService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "stale vehicle redirects to catalogue",
			vehicleID:    "42",
			service:      &fakeReservationService{openErr: gateway.ErrNotFound},
			expectedCode: http.StatusFound,
			wantLocation: session.CataloguePath,
		},
		{
			name:         "backend down",
			vehicleID:    "42",
			service:      &fakeReservationService{openErr: context.DeadlineExceeded},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "opens the wizard",
			vehicleID:    "42",
			service:      &fakeReservationService{machine: reservation.New(7, testVehicle())},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/reservation/"+tt.vehicleID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("vehicleID", tt.vehicleID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			newReservationHandler(tt.service).Open(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}
			if tt.wantLocation != "" && rec.Header().Get("Location") != tt.wantLocation {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.wantLocation)
			}
			if tt.expectedCode == http.StatusOK {
				view := decodeView(t, rec.Body)
				if view.State != reservation.StateDates {
					t.Errorf("state = %q, want %q", view.State, reservation.StateDates)
				}
			}
		})
	}
}

func TestReservationHandler_UpdateField_Dates(t *testing.T) {
	svc := &fakeReservationService{machine: reservation.New(7, testVehicle())}
	h := newReservationHandler(svc)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.UpdateField(rec, httptest.NewRequest("POST", "/reservation/field", bytes.NewBufferString(body)))
		return rec
	}

	rec := post(`{"name":"startDate","value":"2026-09-10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("startDate update: %d %s", rec.Code, rec.Body)
	}
	rec = post(`{"name":"endDate","value":"2026-09-13"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("endDate update: %d %s", rec.Code, rec.Body)
	}

	view := decodeView(t, rec.Body)
	if view.Quote.Days != 3 {
		t.Errorf("quote days = %d, want 3", view.Quote.Days)
	}

	if rec := post(`{"name":"startDate","value":"10/09/2026"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed date accepted: %d", rec.Code)
	}

	// Clearing a date zeroes the quote.
	rec = post(`{"name":"endDate","value":""}`)
	if view := decodeView(t, rec.Body); view.Quote.Total != 0 {
		t.Errorf("total after clearing end date = %d, want 0", view.Quote.Total)
	}
}

func TestReservationHandler_NoWizardOpen(t *testing.T) {
	h := newReservationHandler(&fakeReservationService{})

	for _, route := range []func(http.ResponseWriter, *http.Request){h.UpdateField, h.ToggleExtra, h.Next, h.Back, h.Retry} {
		rec := httptest.NewRecorder()
		route(rec, httptest.NewRequest("POST", "/reservation/next", bytes.NewBufferString(`{}`)))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	}
}

func TestReservationHandler_NextGuard(t *testing.T) {
	svc := &fakeReservationService{machine: reservation.New(7, testVehicle())}
	h := newReservationHandler(svc)

	rec := httptest.NewRecorder()
	h.Next(rec, httptest.NewRequest("POST", "/reservation/next", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("advancing without dates: %d, want 422", rec.Code)
	}

	svc.machine.SetDates(
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	)
	rec = httptest.NewRecorder()
	h.Next(rec, httptest.NewRequest("POST", "/reservation/next", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("advancing with dates: %d %s", rec.Code, rec.Body)
	}
	if view := decodeView(t, rec.Body); view.State != reservation.StateOptions {
		t.Errorf("state = %q, want %q", view.State, reservation.StateOptions)
	}
}

func TestReservationHandler_Submit(t *testing.T) {
	confirmed := reservation.New(7, testVehicle())
	confirmed.SetDates(
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	)

	tests := []struct {
		name         string
		service      *fakeReservationService
		expectedCode int
		wantDiscard  bool
	}{
		{
			name:         "no wizard",
			service:      &fakeReservationService{submitErr: reservation.ErrTerminalState},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "missing contact details",
			service:      &fakeReservationService{machine: confirmed, submitErr: reservation.ErrContactRequired},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "double click",
			service:      &fakeReservationService{machine: confirmed, submitErr: reservation.ErrSubmitInFlight},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "backend rejection",
			service:      &fakeReservationService{machine: confirmed, submitErr: &gateway.APIError{Status: 409, Message: "vehicle already booked"}},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "confirmed",
			service:      &fakeReservationService{machine: confirmed},
			expectedCode: http.StatusOK,
			wantDiscard:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newReservationHandler(tt.service).Submit(rec, httptest.NewRequest("POST", "/reservation/submit", nil))

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}
			if tt.service.discarded != tt.wantDiscard {
				t.Errorf("discarded = %v, want %v", tt.service.discarded, tt.wantDiscard)
			}
		})
	}
}

func TestReservationHandler_Bookings(t *testing.T) {
	svc := &fakeReservationService{bookings: []models.ReservationSummary{
		{ID: 1, VehicleID: 42, Status: "confirmed"},
		{ID: 2, VehicleID: 44, Status: "cancelled"},
	}}

	rec := httptest.NewRecorder()
	newReservationHandler(svc).Bookings(rec, httptest.NewRequest("GET", "/bookings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.Count != 2 {
		t.Errorf("count = %d, want 2", payload.Count)
	}
}

func TestReservationHandler_Cancel(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		service      *fakeReservationService
		expectedCode int
	}{
		{name: "bad id", id: "x", service: &fakeReservationService{}, expectedCode: http.StatusBadRequest},
		{name: "not found", id: "9", service: &fakeReservationService{cancelErr: gateway.ErrNotFound}, expectedCode: http.StatusNotFound},
		{name: "cancelled", id: "9", service: &fakeReservationService{}, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/bookings/"+tt.id+"/cancel", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			newReservationHandler(tt.service).Cancel(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedCode == http.StatusOK && len(tt.service.cancelled) != 1 {
				t.Errorf("cancel not forwarded to the gateway")
			}
		})
	}
}
