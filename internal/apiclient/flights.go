package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
)

type FlightService struct {
	client *Client
}

// SearchQuery names the filters the search form offers. Anything else can be
// passed through Search directly as url.Values.
type SearchQuery struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    string
	Passengers       int
}

func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if q.DepartureAirport != "" {
		v.Set("departure_airport", q.DepartureAirport)
	}
	if q.ArrivalAirport != "" {
		v.Set("arrival_airport", q.ArrivalAirport)
	}
	if q.DepartureDate != "" {
		v.Set("departure_date", q.DepartureDate)
	}
	if q.Passengers > 0 {
		v.Set("seats_available_gte", strconv.Itoa(q.Passengers))
	}
	return v
}

func (s *FlightService) Search(ctx context.Context, query url.Values) ([]domain.Flight, error) {
	res, err := call[struct {
		Flights []domain.Flight `json:"flights"`
	}](ctx, s.client, Request{
		Method: http.MethodGet,
		Path:   "/flights/search",
		Query:  query,
	}, flightListShape)
	if err != nil {
		return nil, err
	}
	return res.Flights, nil
}

func (s *FlightService) Get(ctx context.Context, id string) (*domain.Flight, error) {
	res, err := call[struct {
		Flight domain.Flight `json:"flight"`
	}](ctx, s.client, Request{
		Method: http.MethodGet,
		Path:   "/flights/" + url.PathEscape(id),
	}, flightShape)
	if err != nil {
		return nil, err
	}
	return &res.Flight, nil
}
