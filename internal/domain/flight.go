package domain

type Flight struct {
	ID                ID       `json:"id"`
	FlightNumber      string   `json:"flight_number"`
	DepartureAirport  string   `json:"departure_airport"`
	ArrivalAirport    string   `json:"arrival_airport"`
	DepartureDatetime string   `json:"departure_datetime"`
	ArrivalDatetime   string   `json:"arrival_datetime"`
	AircraftType      string   `json:"aircraft_type"`
	SeatsAvailable    int      `json:"seats_available"`
	OriginalPrice     float64  `json:"original_price"`
	ReducedPrice      float64  `json:"reduced_price"`
	Status            string   `json:"status"`
	TenantID          ID       `json:"tenant_id,omitempty"`
	TenantName        string   `json:"tenant_name,omitempty"`
	Amenities         []string `json:"amenities,omitempty"`
	LuggageAllowance  string   `json:"luggage_allowance,omitempty"`
	FlightDuration    string   `json:"flight_duration,omitempty"`
	Description       string   `json:"description,omitempty"`
	AircraftImages    []string `json:"aircraft_images,omitempty"`
}
