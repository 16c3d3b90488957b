package models

// ReservationSummary is one row of GET /reservations/client/{clientId}.
type ReservationSummary struct {
	ID            int64    `json:"id"`
	VehicleID     int64    `json:"vehicleId"`
	VehicleName   string   `json:"vehicleName"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Insurance     string   `json:"insurance"`
	Extras        []string `json:"extras"`
	PaymentMethod string   `json:"paymentMethod"`
	Status        string   `json:"status"`
}
