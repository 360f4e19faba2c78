package apiclient

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
)

// storefrontRole is attached to every registration coming through the storefront.
const storefrontRole = "user"

type AuthService struct {
	client *Client
}

type registerRequest struct {
	domain.Registration
	Role string `json:"role"`
}

// Register creates an account. If the API answers with a token the user is signed
// in straight away.
func (s *AuthService) Register(ctx context.Context, in domain.Registration) (*domain.AuthResult, error) {
	res, err := call[domain.AuthResult](ctx, s.client, Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   registerRequest{Registration: in, Role: storefrontRole},
	}, registerShape)
	if err != nil {
		return nil, err
	}
	if res.AccessToken != "" {
		if err := s.client.storeCredential(ctx, res.AccessToken); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (s *AuthService) Login(ctx context.Context, in domain.Credentials) (*domain.AuthResult, error) {
	res, err := call[domain.AuthResult](ctx, s.client, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   in,
	}, loginShape)
	if err != nil {
		return nil, err
	}
	if err := s.client.storeCredential(ctx, res.AccessToken); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout forgets the credential. The API keeps no server-side session to end.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.session.Clear(ctx); err != nil {
		return &Error{Message: credentialErrorMessage, Err: err}
	}
	return nil
}

func (s *AuthService) Token(ctx context.Context) (string, error) {
	token, err := s.client.session.Get(ctx)
	if err != nil {
		return "", &Error{Message: credentialErrorMessage, Err: err}
	}
	return token, nil
}

func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	return token != "", err
}
