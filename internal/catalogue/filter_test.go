package catalogue

import (
	"testing"

	"github.com/carrentapp/carrent/internal/models"
)

func fleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Yaris", DailyRate: 250, Available: true, AgencyAddress: "10 Bd Zerktouni, Casablanca", Latitude: 33.5731, Longitude: -7.5898, Fuel: "Essence", Seats: 5, Gearbox: "Manuelle"},
		{ID: 2, Make: "BMW", Model: "X3", DailyRate: 900, Available: false, AgencyAddress: "4 Av. Hassan II, Rabat", Latitude: 34.0209, Longitude: -6.8416, Fuel: "Diesel", Seats: 5, Gearbox: "Automatique"},
		{ID: 3, Make: "Toyota", Model: "Corolla", DailyRate: 320, Available: true, AgencyAddress: "22 Rue Atlas, Marrakech", Latitude: 31.6295, Longitude: -7.9811, Fuel: "Hybride", Seats: 5, Gearbox: "Automatique"},
		{ID: 4, Make: "Dacia", Model: "Duster", DailyRate: 280, Available: true, AgencyAddress: ""}, // no address, no coordinates
		{ID: 5, Make: "toyota", Model: "RAV4", DailyRate: 600, Available: false, AgencyAddress: "7 Av. des FAR, Casablanca", Latitude: 33.5950, Longitude: -7.6190, Fuel: "Diesel", Seats: 7, Gearbox: "Automatique"},
	}
}

func ids(results []Result) []int64 {
	out := make([]int64, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_NeutralSpecKeepsEverything(t *testing.T) {
	got := Apply(fleet(), models.NewFilterSpec())
	if !equalIDs(ids(got), 1, 2, 3, 4, 5) {
		t.Errorf("neutral spec changed the list: %v", ids(got))
	}
}

func TestApply_AvailableBrandPreservesOrder(t *testing.T) {
	// Available Toyotas only, original relative order kept, brand match
	// case-insensitive.
	spec := models.NewFilterSpec()
	spec.Availability = models.AvailabilityAvailable
	spec.Brand = "Toyota"

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 1, 3) {
		t.Errorf("got %v, want [1 3]", ids(got))
	}
}

func TestApply_UnavailableOnly(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Availability = "rented" // anything but "available" selects the rest

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 2, 5) {
		t.Errorf("got %v, want [2 5]", ids(got))
	}
}

func TestApply_CityMatchIsCaseInsensitive(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Location = "casablanca"

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 1, 5) {
		t.Errorf("got %v, want [1 5]", ids(got))
	}
}

func TestApply_MissingAddressExcludedOnlyWhenTargeted(t *testing.T) {
	// Vehicle 4 has no address. It survives every filter except a city one.
	spec := models.NewFilterSpec()
	spec.Brand = "Dacia"
	if got := Apply(fleet(), spec); !equalIDs(ids(got), 4) {
		t.Fatalf("brand filter dropped the address-less vehicle: %v", ids(got))
	}

	spec = models.NewFilterSpec()
	spec.Location = "Rabat"
	for _, r := range Apply(fleet(), spec) {
		if r.ID == 4 {
			t.Error("city filter matched a vehicle with no derivable city")
		}
	}
}

func TestApply_PriceRange(t *testing.T) {
	min, max := 260, 700
	spec := models.NewFilterSpec()
	spec.PriceMin = &min
	spec.PriceMax = &max

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 3, 4, 5) {
		t.Errorf("got %v, want [3 4 5]", ids(got))
	}
}

func TestApply_PriceSortAfterFiltering(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Availability = models.AvailabilityAvailable
	spec.PriceSort = models.PriceSortHighToLow

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 3, 4, 1) {
		t.Errorf("got %v, want [3 4 1]", ids(got))
	}
}

func TestApply_SeatsGearboxFuel(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Seats = "7"
	if got := Apply(fleet(), spec); !equalIDs(ids(got), 5) {
		t.Errorf("seats: got %v, want [5]", ids(got))
	}

	spec = models.NewFilterSpec()
	spec.Gearbox = "automatique"
	spec.Fuel = "Diesel"
	if got := Apply(fleet(), spec); !equalIDs(ids(got), 2, 5) {
		t.Errorf("gearbox+fuel: got %v, want [2 5]", ids(got))
	}
}

func TestApply_NearestSortsByDistanceAndAttachesIt(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Location = models.LocationNearest
	// Just off the Casablanca coast: vehicles 1 and 5 are within the
	// default radius, Rabat and Marrakech are not.
	spec.UserCoords = &models.Coordinates{Lat: 33.57, Lng: -7.60}

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 1, 5) {
		t.Fatalf("got %v, want [1 5]", ids(got))
	}
	var prev float64
	for _, r := range got {
		if r.DistanceKm == nil {
			t.Fatalf("vehicle %d missing attached distance", r.ID)
		}
		if *r.DistanceKm < prev {
			t.Fatalf("results not sorted by ascending distance")
		}
		prev = *r.DistanceKm
	}
}

func TestApply_NearestWithRadius(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Location = models.LocationNearest
	spec.UserCoords = &models.Coordinates{Lat: 34.0209, Lng: -6.8416} // Rabat
	spec.RadiusKm = 5

	got := Apply(fleet(), spec)
	if !equalIDs(ids(got), 2) {
		t.Errorf("got %v, want [2]", ids(got))
	}
}

func TestApply_NearestWithoutCoordsIsPassThrough(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Location = models.LocationNearest

	if got := Apply(fleet(), spec); len(got) != len(fleet()) {
		t.Errorf("nearest without coordinates filtered vehicles: %v", ids(got))
	}
}

func TestApply_Idempotent(t *testing.T) {
	spec := models.NewFilterSpec()
	spec.Availability = models.AvailabilityAvailable
	spec.PriceSort = models.PriceSortLowToHigh

	once := Apply(fleet(), spec)

	vehicles := make([]models.Vehicle, len(once))
	for i, r := range once {
		vehicles[i] = r.Vehicle
	}
	twice := Apply(vehicles, spec)

	if !equalIDs(ids(twice), ids(once)...) {
		t.Errorf("re-filtering changed the list: %v vs %v", ids(twice), ids(once))
	}
}

func TestCityFromAddress(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"12 Av. des FAR, Meknès", "Meknès"},
		{"10 Bd Zerktouni, Casablanca", "Casablanca"},
		{"Rue A, Quartier B, Tangier", "Tangier"},
		{"no comma here", UnknownCity},
		{"", UnknownCity},
		{"trailing comma,", UnknownCity},
		{"spaces,   Agadir  ", "Agadir"},
	}

	for _, tt := range tests {
		if got := CityFromAddress(tt.addr); got != tt.want {
			t.Errorf("CityFromAddress(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestBrandsAndCities(t *testing.T) {
	brands := Brands(fleet())
	// Distinct by exact string; the lowercase "toyota" listing is its own
	// entry, matching what a dropdown built from raw data would show.
	if len(brands) != 4 {
		t.Errorf("Brands() = %v, want 4 entries", brands)
	}

	cities := Cities(fleet())
	if !equalStrings(cities, "Casablanca", "Marrakech", "Rabat") {
		t.Errorf("Cities() = %v", cities)
	}
}

func equalStrings(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
