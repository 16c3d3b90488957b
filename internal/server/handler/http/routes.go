// Package http provides HTTP routing and handlers for the car rental web
// application: the catalogue, the reservation wizard, authentication and the
// bookings list.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/carrentapp/carrent/internal/middleware"
	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/session"
)

// NewRouter constructs the application's HTTP handler.
//
// Public routes:
//
//	GET  /catalogue            → filtered vehicle list (filters as query params)
//	GET  /car/{id}             → vehicle details
//	GET  /signin               → sign-in page state (remembered e-mail, notice)
//	POST /signin               → authHandler.SignIn
//	GET  /signup               → sign-up page state (theme, notice)
//	POST /signup               → authHandler.SignUp
//	POST /signout              → authHandler.SignOut
//	POST /theme                → authHandler.SetTheme
//
// Client routes (session with role client required; anonymous requests stash
// the target path and are redirected to sign-in):
//
//	GET  /reservation/{vehicleID}  → open or resume the wizard
//	POST /reservation/field        → update one draft field
//	POST /reservation/extra        → toggle an extra
//	POST /reservation/next|back    → step navigation
//	POST /reservation/submit       → submit the assembled payload
//	POST /reservation/retry        → return a failed wizard to payment
//	GET  /bookings                 → the client's reservations
//	POST /bookings/{id}/cancel     → cancel one reservation
//
// Owner routes (role owner required):
//
//	GET /owner                 → owner dashboard state
//
// Middleware chain (applied in order):
//  1. WithSession                 — session cookie and context injection
//  2. WithRequestLogging(logger)  — structured request logging
func NewRouter(
	authHandler *AuthHandler,
	catalogueHandler *CatalogueHandler,
	reservationHandler *ReservationHandler,
	bridge *session.Bridge,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithSession)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, session.CataloguePath, http.StatusFound)
	})

	// Public routes
	r.Get("/catalogue", catalogueHandler.List)
	r.Get("/car/{id}", catalogueHandler.Details)
	r.Get("/signin", authHandler.SignInState)
	r.Post("/signin", authHandler.SignIn)
	r.Get("/signup", authHandler.SignInState)
	r.Post("/signup", authHandler.SignUp)
	r.Post("/signout", authHandler.SignOut)
	r.Post("/theme", authHandler.SetTheme)

	// Client routes: reservation wizard and bookings
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(bridge, models.RoleClient))
		r.Get("/reservation/{vehicleID}", reservationHandler.Open)
		r.Post("/reservation/field", reservationHandler.UpdateField)
		r.Post("/reservation/extra", reservationHandler.ToggleExtra)
		r.Post("/reservation/next", reservationHandler.Next)
		r.Post("/reservation/back", reservationHandler.Back)
		r.Post("/reservation/submit", reservationHandler.Submit)
		r.Post("/reservation/retry", reservationHandler.Retry)
		r.Get("/bookings", reservationHandler.Bookings)
		r.Post("/bookings/{id}/cancel", reservationHandler.Cancel)
	})

	// Owner routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(bridge, models.RoleOwner))
		r.Get("/owner", authHandler.OwnerDashboard)
	})

	return r
}
