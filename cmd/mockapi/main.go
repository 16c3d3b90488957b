// Package main runs a development stand-in for the rental backend API. It
// serves a seeded fleet and accepts sign-ins and reservations in memory, so
// the web application can be exercised without the real backend.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/carrentapp/carrent/internal/models"
)

type reservationRecord struct {
	ID            int64    `json:"id"`
	ClientID      int64    `json:"clientId"`
	VehicleID     int64    `json:"vehicleId"`
	VehicleName   string   `json:"vehicleName"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Insurance     string   `json:"insurance"`
	Extras        []string `json:"extras"`
	PaymentMethod string   `json:"paymentMethod"`
	Status        string   `json:"status"`
}

// api holds the in-memory backend state.
type api struct {
	mu           sync.Mutex
	vehicles     []models.Vehicle
	users        map[string]models.User
	passwords    map[string]string
	reservations []reservationRecord
	nextUserID   int64
	nextResID    int64
	log          *zap.Logger
}

func newAPI(log *zap.Logger) *api {
	a := &api{
		vehicles:   seedFleet(),
		users:      make(map[string]models.User),
		passwords:  make(map[string]string),
		nextUserID: 1,
		nextResID:  1,
		log:        log,
	}
	// One account per role so the app is usable out of the box.
	a.addUser("Yassine Alaoui", "client@example.com", "client123", models.RoleClient)
	a.addUser("Auto Maroc Premium", "owner@example.com", "owner123", models.RoleOwner)
	return a
}

func (a *api) addUser(name, email, password string, role models.Role) models.User {
	u := models.User{ID: a.nextUserID, Name: name, Email: email, Role: role}
	a.nextUserID++
	a.users[strings.ToLower(email)] = u
	a.passwords[strings.ToLower(email)] = password
	return u
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (a *api) availableVehicles(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.vehicles)
}

func (a *api) vehicleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range a.vehicles {
		if v.ID == id {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "vehicle not found")
}

func (a *api) signIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	email := strings.ToLower(req.Email)
	u, ok := a.users[email]
	if !ok || a.passwords[email] != req.Password {
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	a.log.Info("sign-in", zap.String("email", req.Email), zap.String("role", string(u.Role)))
	writeJSON(w, http.StatusOK, u)
}

func (a *api) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.users[strings.ToLower(req.Email)]; exists {
		writeMessage(w, http.StatusConflict, "email already registered")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	u := a.addUser(req.FullName, req.Email, req.Password, role)

	a.log.Info("sign-up", zap.String("email", req.Email), zap.String("role", string(role)))
	writeJSON(w, http.StatusCreated, u)
}

func (a *api) createReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID      int64    `json:"clientId"`
		VehicleID     int64    `json:"vehicleId"`
		StartDate     string   `json:"startDate"`
		EndDate       string   `json:"endDate"`
		Insurance     string   `json:"insurance"`
		Extras        []string `json:"extras"`
		PaymentMethod string   `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var vehicle *models.Vehicle
	for i := range a.vehicles {
		if a.vehicles[i].ID == req.VehicleID {
			vehicle = &a.vehicles[i]
			break
		}
	}
	if vehicle == nil {
		writeMessage(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if !vehicle.Available {
		writeMessage(w, http.StatusConflict, "vehicle already booked")
		return
	}

	rec := reservationRecord{
		ID:            a.nextResID,
		ClientID:      req.ClientID,
		VehicleID:     req.VehicleID,
		VehicleName:   vehicle.Make + " " + vehicle.Model,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Insurance:     req.Insurance,
		Extras:        req.Extras,
		PaymentMethod: req.PaymentMethod,
		Status:        "confirmed",
	}
	a.nextResID++
	a.reservations = append(a.reservations, rec)
	vehicle.Available = false

	a.log.Info("reservation created",
		zap.Int64("id", rec.ID),
		zap.Int64("vehicle", rec.VehicleID),
		zap.Int64("client", rec.ClientID),
	)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *api) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.reservations {
		if a.reservations[i].ID != id {
			continue
		}
		a.reservations[i].Status = "cancelled"
		for j := range a.vehicles {
			if a.vehicles[j].ID == a.reservations[i].VehicleID {
				a.vehicles[j].Available = true
			}
		}
		writeJSON(w, http.StatusOK, a.reservations[i])
		return
	}
	writeMessage(w, http.StatusNotFound, "reservation not found")
}

func (a *api) clientReservations(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	list := make([]reservationRecord, 0)
	for _, rec := range a.reservations {
		if rec.ClientID == clientID {
			list = append(list, rec)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func main() {
	addr := flag.String("a", "localhost:9090", "run on ip:port server")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	a := newAPI(log)

	r := chi.NewRouter()
	r.Get("/vehicles/available", a.availableVehicles)
	r.Get("/vehicles/{id}", a.vehicleByID)
	r.Post("/auth/signin", a.signIn)
	r.Post("/auth/signup", a.signUp)
	r.Post("/reservations", a.createReservation)
	r.Put("/reservations/{id}/cancel", a.cancelReservation)
	r.Get("/reservations/client/{clientId}", a.clientReservations)

	log.Info("mock rental API listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// seedFleet returns the development fleet.
func seedFleet() []models.Vehicle {
	return []models.Vehicle{
		{
			ID: 1, OwnerID: 2, Make: "Toyota", Model: "Corolla 2022",
			DailyRate: 320, Available: true,
			AgencyName:    "Auto Maroc Premium",
			AgencyAddress: "12 Boulevard Zerktouni, Casablanca",
			AgencyPhone:   "+212 522-123456",
			Fuel:          "Gasoline", Seats: 5, Gearbox: "Automatic",
			Latitude: 33.5731, Longitude: -7.5898,
		},
		{
			ID: 2, OwnerID: 3, Make: "Mercedes", Model: "Class A 2021",
			DailyRate: 550, Available: false,
			AgencyName:    "Royal Cars Rental",
			AgencyAddress: "45 Avenue Mohammed V, Rabat",
			AgencyPhone:   "+212 537-234567",
			Fuel:          "Diesel", Seats: 5, Gearbox: "Automatic",
			Latitude: 34.0209, Longitude: -6.8416,
		},
		{
			ID: 3, OwnerID: 4, Make: "BMW", Model: "Series 3 2020",
			DailyRate: 480, Available: true,
			AgencyName:    "Marrakech Prestige Cars",
			AgencyAddress: "8 Rue de la Liberté, Marrakech",
			AgencyPhone:   "+212 524-345678",
			Fuel:          "Gasoline", Seats: 5, Gearbox: "Manual",
			Latitude: 31.6295, Longitude: -7.9811,
		},
		{
			ID: 4, OwnerID: 5, Make: "Renault", Model: "Clio 5",
			DailyRate: 250, Available: true,
			AgencyName:    "Tangier Mobility",
			AgencyAddress: "22 Avenue d'Espagne, Tangier",
			AgencyPhone:   "+212 539-456789",
			Fuel:          "Gasoline", Seats: 5, Gearbox: "Manual",
			Latitude: 35.7595, Longitude: -5.8340,
		},
		{
			ID: 5, OwnerID: 6, Make: "Hyundai", Model: "Tucson 2023",
			DailyRate: 520, Available: true,
			AgencyName:    "Agadir Auto Rent",
			AgencyAddress: "3 Boulevard du 20 Août, Agadir",
			AgencyPhone:   "+212 528-567890",
			Fuel:          "Diesel", Seats: 5, Gearbox: "Automatic",
			Latitude: 30.4278, Longitude: -9.5981,
		},
		{
			ID: 6, OwnerID: 7, Make: "Dacia", Model: "Duster 2022",
			DailyRate: 300, Available: true,
			AgencyName:    "Fez Luxury Rentals",
			AgencyAddress: "17 Avenue Hassan II, Fez",
			AgencyPhone:   "+212 535-678901",
			Fuel:          "Diesel", Seats: 5, Gearbox: "Manual",
			Latitude: 34.0331, Longitude: -5.0003,
		},
		{
			ID: 7, OwnerID: 2, Make: "Volkswagen", Model: "Golf 8",
			DailyRate: 420, Available: true,
			AgencyName:    "Auto Maroc Premium",
			AgencyAddress: "12 Boulevard Zerktouni, Casablanca",
			AgencyPhone:   "+212 522-123456",
			Fuel:          "Gasoline", Seats: 5, Gearbox: "Automatic",
			Latitude: 33.5731, Longitude: -7.5898,
		},
		{
			ID: 8, OwnerID: 8, Make: "Kia", Model: "Picanto 2021",
			DailyRate: 200, Available: true,
			AgencyName:    "Oujda Auto Services",
			AgencyAddress: "9 Boulevard Derfoufi, Oujda",
			AgencyPhone:   "+212 536-789012",
			Fuel:          "Gasoline", Seats: 4, Gearbox: "Manual",
			Latitude: 34.6814, Longitude: -1.9086,
		},
	}
}
