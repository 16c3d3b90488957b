package models

import "time"

// Filter option values recognized by FilterSpec.
const (
	// AvailabilityAll passes every vehicle through regardless of status.
	AvailabilityAll = "all"
	// AvailabilityAvailable keeps only vehicles flagged available.
	AvailabilityAvailable = "available"

	// LocationAll disables location filtering.
	LocationAll = "all"
	// LocationNearest filters by distance to user-supplied coordinates.
	LocationNearest = "nearest"

	// PriceSortLowToHigh sorts the filtered list by ascending daily rate.
	PriceSortLowToHigh = "low-to-high"
	// PriceSortHighToLow sorts the filtered list by descending daily rate.
	PriceSortHighToLow = "high-to-low"
)

// Coordinates is a user position supplied by an external geolocation source.
// The filter engine never acquires a position itself.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FilterSpec is the transient catalogue filter configuration. Zero values
// mean "no constraint" for every field except Availability and Location,
// whose neutral value is "all".
type FilterSpec struct {
	// Availability is AvailabilityAll or AvailabilityAvailable.
	Availability string `json:"availability"`
	// Location is LocationAll, LocationNearest, or a city name.
	Location string `json:"location"`
	// Brand matches the vehicle make case-insensitively when non-empty.
	Brand string `json:"brand"`
	// Seats matches the seat count when non-empty (kept as the raw form
	// value, e.g. "5").
	Seats string `json:"seats"`
	// Gearbox matches the transmission type when non-empty.
	Gearbox string `json:"gearbox"`
	// Fuel matches the fuel type when non-empty.
	Fuel string `json:"fuel"`
	// PriceMin and PriceMax bound the daily rate when non-nil.
	PriceMin *int `json:"price_min,omitempty"`
	PriceMax *int `json:"price_max,omitempty"`
	// PriceSort is empty, PriceSortLowToHigh or PriceSortHighToLow.
	PriceSort string `json:"price_sort"`
	// DateFrom and DateTo are the desired rental window. They prefill the
	// reservation wizard; this layer has no per-vehicle booking calendar
	// to filter against.
	DateFrom time.Time `json:"date_from,omitempty"`
	DateTo   time.Time `json:"date_to,omitempty"`
	// UserCoords is required for LocationNearest mode.
	UserCoords *Coordinates `json:"user_coords,omitempty"`
	// RadiusKm bounds nearest-mode results. Zero means the default radius.
	RadiusKm float64 `json:"radius_km,omitempty"`
}

// NewFilterSpec returns a spec with the neutral "all" selectors set.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Availability: AvailabilityAll,
		Location:     LocationAll,
	}
}
