// Package catalogue derives the displayed vehicle list from the full fleet
// and a filter specification. Filtering is stable and order-preserving;
// sorting, when requested, is applied after every filter condition.
package catalogue

import (
	"sort"
	"strconv"
	"strings"

	"github.com/carrentapp/carrent/internal/models"
)

// DefaultRadiusKm bounds nearest-mode results when the spec sets no radius.
const DefaultRadiusKm = 50.0

// Result is one catalogue entry: the vehicle plus derived display fields.
type Result struct {
	models.Vehicle
	// City is derived from the agency address, UnknownCity when absent.
	City string `json:"city"`
	// DistanceKm is set in nearest mode so the distance can be displayed;
	// nil otherwise.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Apply filters and optionally sorts the fleet according to spec. Vehicles
// missing optional fields stay in the result unless the filter targets that
// field. The function is pure: vehicles is never mutated, and applying the
// same spec to an already-filtered list yields the same list.
func Apply(vehicles []models.Vehicle, spec models.FilterSpec) []Result {
	results := make([]Result, 0, len(vehicles))
	for _, v := range vehicles {
		results = append(results, Result{Vehicle: v, City: CityFromAddress(v.AgencyAddress)})
	}

	if spec.Availability != "" && spec.Availability != models.AvailabilityAll {
		wantAvailable := spec.Availability == models.AvailabilityAvailable
		results = keep(results, func(r Result) bool { return r.Available == wantAvailable })
	}

	if spec.Brand != "" {
		results = keep(results, func(r Result) bool { return strings.EqualFold(r.Make, spec.Brand) })
	}

	if spec.Seats != "" {
		results = keep(results, func(r Result) bool { return strconv.Itoa(r.Seats) == spec.Seats })
	}

	if spec.Gearbox != "" {
		results = keep(results, func(r Result) bool { return strings.EqualFold(r.Gearbox, spec.Gearbox) })
	}

	if spec.Fuel != "" {
		results = keep(results, func(r Result) bool { return strings.EqualFold(r.Fuel, spec.Fuel) })
	}

	if spec.PriceMin != nil {
		results = keep(results, func(r Result) bool { return r.DailyRate >= *spec.PriceMin })
	}
	if spec.PriceMax != nil {
		results = keep(results, func(r Result) bool { return r.DailyRate <= *spec.PriceMax })
	}

	results = filterLocation(results, spec)

	switch spec.PriceSort {
	case models.PriceSortLowToHigh:
		sort.SliceStable(results, func(i, j int) bool { return results[i].DailyRate < results[j].DailyRate })
	case models.PriceSortHighToLow:
		sort.SliceStable(results, func(i, j int) bool { return results[i].DailyRate > results[j].DailyRate })
	}

	return results
}

func filterLocation(results []Result, spec models.FilterSpec) []Result {
	switch {
	case spec.Location == "" || spec.Location == models.LocationAll:
		return results

	case spec.Location == models.LocationNearest:
		if spec.UserCoords == nil {
			// Nearest mode without a position cannot filter anything.
			return results
		}
		radius := spec.RadiusKm
		if radius <= 0 {
			radius = DefaultRadiusKm
		}

		nearby := results[:0:0]
		for _, r := range results {
			if !r.HasCoordinates() {
				continue
			}
			d := distanceKm(spec.UserCoords.Lat, spec.UserCoords.Lng, r.Latitude, r.Longitude)
			if d > radius {
				continue
			}
			r.DistanceKm = &d
			nearby = append(nearby, r)
		}
		sort.SliceStable(nearby, func(i, j int) bool {
			return *nearby[i].DistanceKm < *nearby[j].DistanceKm
		})
		return nearby

	default:
		return keep(results, func(r Result) bool {
			return r.City != UnknownCity && strings.EqualFold(r.City, spec.Location)
		})
	}
}

// keep is a stable in-order filter.
func keep(results []Result, pred func(Result) bool) []Result {
	out := results[:0:0]
	for _, r := range results {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Brands returns the distinct vehicle makes in the fleet, sorted, for the
// filter bar's brand dropdown.
func Brands(vehicles []models.Vehicle) []string {
	return distinct(vehicles, func(v models.Vehicle) string { return v.Make })
}

// Cities returns the distinct derived cities in the fleet, sorted, excluding
// the unknown fallback.
func Cities(vehicles []models.Vehicle) []string {
	names := distinct(vehicles, func(v models.Vehicle) string {
		if c := CityFromAddress(v.AgencyAddress); c != UnknownCity {
			return c
		}
		return ""
	})
	return names
}

func distinct(vehicles []models.Vehicle, key func(models.Vehicle) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range vehicles {
		k := key(v)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
