package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
)

type BookingService struct {
	client *Client
}

type bookingEnvelope struct {
	Booking domain.Booking `json:"booking"`
	Message string         `json:"message,omitempty"`
}

func (s *BookingService) Create(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	return s.booking(ctx, Request{Method: http.MethodPost, Path: "/bookings", Body: in})
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.booking(ctx, Request{Method: http.MethodGet, Path: "/bookings/" + url.PathEscape(id)})
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	return s.booking(ctx, Request{Method: http.MethodPost, Path: "/bookings/" + url.PathEscape(id) + "/cancel"})
}

// List returns the signed-in user's bookings.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	res, err := call[struct {
		Bookings []domain.Booking `json:"bookings"`
	}](ctx, s.client, Request{Method: http.MethodGet, Path: "/bookings"}, bookingListShape)
	if err != nil {
		return nil, err
	}
	return res.Bookings, nil
}

func (s *BookingService) booking(ctx context.Context, req Request) (*domain.Booking, error) {
	res, err := call[bookingEnvelope](ctx, s.client, req, bookingShape)
	if err != nil {
		return nil, err
	}
	return &res.Booking, nil
}
