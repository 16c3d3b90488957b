package catalogue

import "strings"

// UnknownCity is reported when an agency address carries no derivable city.
const UnknownCity = "Unknown"

// CityFromAddress derives a city from a free-text agency address by taking
// the part after the last comma: "12 Av. des FAR, Meknès" yields "Meknès".
// This is a fragile heuristic kept until the rental API supplies a
// structured city field; an address without a comma (or an empty one)
// yields UnknownCity.
func CityFromAddress(addr string) string {
	i := strings.LastIndex(addr, ",")
	if i < 0 {
		return UnknownCity
	}
	city := strings.TrimSpace(addr[i+1:])
	if city == "" {
		return UnknownCity
	}
	return city
}
