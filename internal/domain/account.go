package domain

import "time"

type Profile struct {
	ID                ID     `json:"id"`
	Email             string `json:"email"`
	Username          string `json:"username,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
}

// ProfileUpdate carries only the fields being changed; nil means untouched.
type ProfileUpdate struct {
	Username          *string `json:"username,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.FirstName == nil && u.LastName == nil &&
		u.PhoneNumber == nil && u.ProfilePictureURL == nil
}

type Favourite struct {
	ID                ID        `json:"id"`
	FlightID          ID        `json:"flight_id"`
	FlightNumber      string    `json:"flight_number,omitempty"`
	DepartureAirport  string    `json:"departure_airport,omitempty"`
	ArrivalAirport    string    `json:"arrival_airport,omitempty"`
	DepartureDatetime string    `json:"departure_datetime,omitempty"`
	ReducedPrice      float64   `json:"reduced_price,omitempty"`
	AddedAt           time.Time `json:"added_at"`
}

type AlertCriteria map[string]any

type Alert struct {
	ID                 ID            `json:"id"`
	Criteria           AlertCriteria `json:"criteria"`
	EmailNotifications bool          `json:"email_notifications"`
	CreatedAt          time.Time     `json:"created_at"`
}

type AlertInput struct {
	Criteria           AlertCriteria `json:"criteria"`
	EmailNotifications bool          `json:"email_notifications"`
}
