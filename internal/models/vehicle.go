// Package models defines the core data structures shared between the rental
// API gateway, the catalogue, the reservation wizard and the session layer.
package models

// Vehicle mirrors the rental API's vehicle resource. It is read-only on this
// side: the backend owns and mutates listings, the application only renders
// and filters them.
type Vehicle struct {
	// ID is the unique identifier of the vehicle.
	ID int64 `json:"id"`
	// OwnerID identifies the owner account the listing belongs to.
	OwnerID int64 `json:"owner_id"`
	// Make is the vehicle brand ("Toyota", "Renault", ...).
	Make string `json:"make"`
	// Model is the vehicle model name.
	Model string `json:"model"`
	// DailyRate is the rental price per day, in the listing's currency unit.
	DailyRate int `json:"daily_rate"`
	// Available reports whether the vehicle can currently be reserved.
	Available bool `json:"available"`
	// AgencyName is the renting agency's display name.
	AgencyName string `json:"agency_name"`
	// AgencyAddress is a free-text address; the city is derived from it.
	AgencyAddress string `json:"agency_address"`
	// AgencyPhone is the agency's contact number.
	AgencyPhone string `json:"agency_phone"`
	// ImageURL points at the primary listing image. May be empty.
	ImageURL string `json:"image_url,omitempty"`
	// Fuel is the fuel type ("Diesel", "Essence", "Hybride", "Electrique").
	Fuel string `json:"fuel,omitempty"`
	// Seats is the seat count. Zero when the listing omits it.
	Seats int `json:"seats,omitempty"`
	// Gearbox is the transmission type ("Manuelle", "Automatique").
	Gearbox string `json:"gearbox,omitempty"`
	// Latitude and Longitude locate the agency for proximity filtering.
	// Both zero when the listing carries no coordinates.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the listing carries a usable position.
func (v Vehicle) HasCoordinates() bool {
	return v.Latitude != 0 || v.Longitude != 0
}
