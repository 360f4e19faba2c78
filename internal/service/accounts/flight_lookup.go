package accounts

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/session"
)

// APIFlightLookup resolves flights through the booking API, forwarding the
// caller's own credential.
type APIFlightLookup struct {
	baseURL string
	opts    []apiclient.Option
}

func NewAPIFlightLookup(baseURL string, opts ...apiclient.Option) *APIFlightLookup {
	return &APIFlightLookup{baseURL: baseURL, opts: opts}
}

func (l *APIFlightLookup) Flight(ctx context.Context, token, flightID string) (*domain.Flight, error) {
	store := session.NewMemoryStore()
	if err := store.Set(ctx, token); err != nil {
		return nil, err
	}
	client, err := apiclient.New(l.baseURL, store, l.opts...)
	if err != nil {
		return nil, err
	}

	flight, err := client.Flights.Get(ctx, flightID)
	if err != nil {
		if apiclient.StatusCode(err) == http.StatusNotFound {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

var _ FlightLookup = (*APIFlightLookup)(nil)
