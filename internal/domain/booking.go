package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID                ID            `json:"id"`
	FlightID          ID            `json:"flight_id"`
	FlightNumber      string        `json:"flight_number,omitempty"`
	DepartureAirport  string        `json:"departure_airport,omitempty"`
	ArrivalAirport    string        `json:"arrival_airport,omitempty"`
	DepartureDatetime string        `json:"departure_datetime,omitempty"`
	SeatsBooked       int           `json:"seats_booked"`
	TotalPrice        float64       `json:"total_price"`
	Status            BookingStatus `json:"booking_status"`
	BookedAt          string        `json:"booked_at,omitempty"`
}

// PaymentDetails are forwarded as entered; the storefront never charges cards itself.
type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVC    string `json:"card_cvc"`
	CardName   string `json:"card_name"`
}

type BookingInput struct {
	FlightID       ID             `json:"flight_id"`
	SeatsBooked    int            `json:"seats_booked"`
	PaymentDetails PaymentDetails `json:"payment_details"`
	TotalPrice     float64        `json:"total_price"`
}
