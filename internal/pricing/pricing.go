// Package pricing computes the displayed cost of a rental from the date
// range, the vehicle's daily rate, the chosen insurance tier and the selected
// extras. The tables here are display-side only: the submitted reservation
// never carries a total, the rental API remains the pricing authority.
package pricing

import (
	"math"
	"time"
)

// InsuranceTier is one of the fixed coverage levels.
type InsuranceTier string

const (
	TierNone    InsuranceTier = "none"
	TierBasic   InsuranceTier = "basic"
	TierPremium InsuranceTier = "premium"
	TierFull    InsuranceTier = "full"
)

// Extra is an optional add-on service priced independently of the daily rate.
type Extra string

const (
	ExtraGPS      Extra = "gps"
	ExtraWiFi     Extra = "wifi"
	ExtraBabySeat Extra = "babySeat"
	ExtraDelivery Extra = "delivery"
)

// insuranceCost is the flat cost added per tier. Unknown tiers cost nothing.
var insuranceCost = map[InsuranceTier]int{
	TierNone:    0,
	TierBasic:   50,
	TierPremium: 100,
	TierFull:    200,
}

// extraCost is the flat cost per selected extra. Unknown extras cost nothing.
var extraCost = map[Extra]int{
	ExtraGPS:      25,
	ExtraWiFi:     40,
	ExtraBabySeat: 30,
	ExtraDelivery: 150,
}

// Tiers lists the selectable insurance tiers in display order.
func Tiers() []InsuranceTier {
	return []InsuranceTier{TierNone, TierBasic, TierPremium, TierFull}
}

// Extras lists the selectable add-ons in display order.
func Extras() []Extra {
	return []Extra{ExtraGPS, ExtraWiFi, ExtraBabySeat, ExtraDelivery}
}

// InsuranceCost returns the flat cost of a tier, zero for unknown values.
func InsuranceCost(tier InsuranceTier) int {
	return insuranceCost[tier]
}

// ExtraCost returns the flat cost of an extra, zero for unknown values.
func ExtraCost(e Extra) int {
	return extraCost[e]
}

// Breakdown is a computed quote. All values are non-negative integers in the
// vehicle's listed currency unit.
type Breakdown struct {
	Days          int `json:"days"`
	Subtotal      int `json:"subtotal"`
	InsuranceCost int `json:"insurance_cost"`
	ExtrasCost    int `json:"extras_cost"`
	Total         int `json:"total"`
}

// Days derives the billable day count from a date range. An unset date on
// either side yields zero. Any set pair counts at least one day, rounding
// partial days up.
func Days(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Quote computes the full cost breakdown. It never fails: incomplete dates
// produce an all-zero breakdown rather than pricing an unscheduled rental.
// Each extra contributes at most once, however many times it appears.
func Quote(start, end time.Time, dailyRate int, tier InsuranceTier, extras []Extra) Breakdown {
	days := Days(start, end)
	if days == 0 {
		return Breakdown{}
	}

	extrasTotal := 0
	seen := make(map[Extra]bool, len(extras))
	for _, e := range extras {
		if seen[e] {
			continue
		}
		seen[e] = true
		extrasTotal += extraCost[e]
	}

	b := Breakdown{
		Days:          days,
		Subtotal:      days * dailyRate,
		InsuranceCost: insuranceCost[tier],
		ExtrasCost:    extrasTotal,
	}
	b.Total = b.Subtotal + b.InsuranceCost + b.ExtrasCost
	return b
}
