package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
)

// AccountService covers the signed-in user's profile, favourite flights and
// price alert subscriptions.
type AccountService struct {
	client *Client
}

type profileEnvelope struct {
	User    domain.Profile `json:"user"`
	Message string         `json:"message,omitempty"`
}

func (s *AccountService) Profile(ctx context.Context) (*domain.Profile, error) {
	res, err := call[profileEnvelope](ctx, s.client, Request{Method: http.MethodGet, Path: "/users/me"}, profileShape)
	if err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	res, err := call[profileEnvelope](ctx, s.client, Request{Method: http.MethodPut, Path: "/users/me", Body: in}, profileShape)
	if err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (s *AccountService) Favourites(ctx context.Context) ([]domain.Favourite, error) {
	res, err := call[struct {
		Favourites []domain.Favourite `json:"favourites"`
	}](ctx, s.client, Request{Method: http.MethodGet, Path: "/users/favourites"}, favouriteListShape)
	if err != nil {
		return nil, err
	}
	return res.Favourites, nil
}

func (s *AccountService) AddFavourite(ctx context.Context, flightID string) (*domain.Favourite, error) {
	res, err := call[struct {
		Favourite domain.Favourite `json:"favourite"`
	}](ctx, s.client, Request{
		Method: http.MethodPost,
		Path:   "/users/favourites",
		Body:   map[string]string{"flight_id": flightID},
	}, favouriteShape)
	if err != nil {
		return nil, err
	}
	return &res.Favourite, nil
}

func (s *AccountService) RemoveFavourite(ctx context.Context, id string) error {
	_, err := s.client.Do(ctx, Request{Method: http.MethodDelete, Path: "/users/favourites/" + url.PathEscape(id)})
	return err
}

func (s *AccountService) Alerts(ctx context.Context) ([]domain.Alert, error) {
	res, err := call[struct {
		Alerts []domain.Alert `json:"alerts"`
	}](ctx, s.client, Request{Method: http.MethodGet, Path: "/users/alerts"}, alertListShape)
	if err != nil {
		return nil, err
	}
	return res.Alerts, nil
}

func (s *AccountService) CreateAlert(ctx context.Context, in domain.AlertInput) (*domain.Alert, error) {
	res, err := call[struct {
		Alert domain.Alert `json:"alert"`
	}](ctx, s.client, Request{Method: http.MethodPost, Path: "/users/alerts", Body: in}, alertShape)
	if err != nil {
		return nil, err
	}
	return &res.Alert, nil
}

func (s *AccountService) DeleteAlert(ctx context.Context, id string) error {
	_, err := s.client.Do(ctx, Request{Method: http.MethodDelete, Path: "/users/alerts/" + url.PathEscape(id)})
	return err
}
