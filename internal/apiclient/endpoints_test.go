package apiclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/session"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credentials() domain.Credentials {
	return domain.Credentials{Email: "user@example.com", Password: "secret"}
}

func bookingInput() domain.BookingInput {
	return domain.BookingInput{
		FlightID:    "12",
		SeatsBooked: 2,
		PaymentDetails: domain.PaymentDetails{
			CardNumber: "4242424242424242",
			CardExpiry: "12/30",
			CardCVC:    "123",
			CardName:   "Ada Lovelace",
		},
		TotalPrice: 398,
	}
}

func TestAuth_LoginStoresToken(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"access_token": "jwt-from-login",
		"message":      "Login successful",
	})

	store := session.NewMemoryStore()
	client := newTestClient(t, api.baseURL(), store)
	ctx := context.Background()

	res, err := client.Auth.Login(ctx, credentials())
	require.NoError(t, err)
	assert.Equal(t, "jwt-from-login", res.AccessToken)

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-from-login", token)

	got := api.last(t)
	assert.Equal(t, "user@example.com", got.Body["email"])
	assert.Equal(t, "secret", got.Body["password"])

	ok, err := client.Auth.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuth_LoginWithoutTokenFailsLoudly(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{"message": "ok"})

	store := session.NewMemoryStore()
	client := newTestClient(t, api.baseURL(), store)
	ctx := context.Background()

	_, err := client.Auth.Login(ctx, credentials())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
	assert.Equal(t, UnexpectedResponseMessage, Message(err))

	token, _ := store.Get(ctx)
	assert.Empty(t, token)
}

func TestAuth_FailedLoginKeepsPreviousCredential(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]any{"message": "Invalid password"})

	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "old-token"))
	client := newTestClient(t, api.baseURL(), store)

	_, err := client.Auth.Login(ctx, credentials())
	require.Error(t, err)

	token, _ := store.Get(ctx)
	assert.Equal(t, "old-token", token)
}

func TestAuth_Register(t *testing.T) {
	testCases := []struct {
		name      string
		response  map[string]any
		wantToken string
	}{
		{
			name:      "token returned",
			response:  map[string]any{"message": "User registered", "access_token": "jwt-from-register"},
			wantToken: "jwt-from-register",
		},
		{
			name:      "no token returned",
			response:  map[string]any{"message": "User registered"},
			wantToken: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI(t)
			api.handle(http.MethodPost, "/auth/register", http.StatusCreated, tc.response)

			store := session.NewMemoryStore()
			client := newTestClient(t, api.baseURL(), store)
			ctx := context.Background()

			res, err := client.Auth.Register(ctx, domain.Registration{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "pw",
			})
			require.NoError(t, err)
			assert.Equal(t, "User registered", res.Message)

			token, _ := store.Get(ctx)
			assert.Equal(t, tc.wantToken, token)

			got := api.last(t)
			assert.Equal(t, "user", got.Body["role"])
			assert.Equal(t, "Ada", got.Body["first_name"])
			assert.Equal(t, "ada@example.com", got.Body["email"])
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "jwt"))
	client := newTestClient(t, "http://localhost:5000/api", store)

	require.NoError(t, client.Auth.Logout(ctx))

	token, err := client.Auth.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	ok, err := client.Auth.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuth_LogoutStoreFailure(t *testing.T) {
	client := newTestClient(t, "http://localhost:5000/api", failingStore{})

	err := client.Auth.Logout(context.Background())
	assert.Equal(t, credentialErrorMessage, Message(err))
}

func TestFlights_Search(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/flights/search", http.StatusOK, map[string]any{
		"flights": []map[string]any{
			{
				"id":                 17,
				"flight_number":      "EL100",
				"departure_airport":  "JFK",
				"arrival_airport":    "LHR",
				"departure_datetime": "2026-11-01T09:00:00",
				"arrival_datetime":   "2026-11-01T21:00:00",
				"aircraft_type":      "Citation X",
				"seats_available":    6,
				"original_price":     1200.0,
				"reduced_price":      399.5,
				"status":             "scheduled",
			},
		},
	})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())

	flights, err := client.Flights.Search(context.Background(), SearchQuery{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		DepartureDate:    "2026-11-01",
		Passengers:       2,
	}.Values())
	require.NoError(t, err)

	want := []domain.Flight{{
		ID:                "17",
		FlightNumber:      "EL100",
		DepartureAirport:  "JFK",
		ArrivalAirport:    "LHR",
		DepartureDatetime: "2026-11-01T09:00:00",
		ArrivalDatetime:   "2026-11-01T21:00:00",
		AircraftType:      "Citation X",
		SeatsAvailable:    6,
		OriginalPrice:     1200,
		ReducedPrice:      399.5,
		Status:            "scheduled",
	}}
	if diff := cmp.Diff(want, flights); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}

	got := api.last(t)
	assert.Equal(t, "2", got.Query.Get("seats_available_gte"))
	assert.Equal(t, "2026-11-01", got.Query.Get("departure_date"))
}

func TestFlights_GetRequiresWrappedShape(t *testing.T) {
	api := newFakeAPI(t)
	// bare object instead of {"flight": {...}}
	api.handle(http.MethodGet, "/flights/{id}", http.StatusOK, map[string]any{"id": "5", "flight_number": "EL5"})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())

	_, err := client.Flights.Get(context.Background(), "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
	assert.Equal(t, http.StatusOK, StatusCode(err))
}

func TestFlights_Get(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/flights/{id}", http.StatusOK, map[string]any{
		"flight": map[string]any{"id": "abc-1", "flight_number": "EL7", "amenities": []string{"WiFi"}},
	})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())

	flight, err := client.Flights.Get(context.Background(), "abc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("abc-1"), flight.ID)
	assert.Equal(t, []string{"WiFi"}, flight.Amenities)
	assert.Equal(t, "/api/flights/abc-1", api.last(t).Path)
}

func TestBookings(t *testing.T) {
	booking := map[string]any{
		"id":             31,
		"flight_id":      12,
		"seats_booked":   2,
		"total_price":    398,
		"booking_status": "confirmed",
	}
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/bookings", http.StatusCreated, map[string]any{"booking": booking, "message": "Booked"})
	api.handle(http.MethodGet, "/bookings/{id}", http.StatusOK, map[string]any{"booking": booking})
	api.handle(http.MethodPost, "/bookings/{id}/cancel", http.StatusOK, map[string]any{
		"booking": map[string]any{"id": 31, "flight_id": 12, "booking_status": "cancelled"},
	})
	api.handle(http.MethodGet, "/bookings", http.StatusOK, map[string]any{"bookings": []any{booking}})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())
	ctx := context.Background()

	created, err := client.Bookings.Create(ctx, bookingInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ID("31"), created.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, created.Status)

	sent := api.last(t)
	assert.Equal(t, "12", sent.Body["flight_id"])
	assert.EqualValues(t, 2, sent.Body["seats_booked"])
	assert.EqualValues(t, 398, sent.Body["total_price"])
	assert.Equal(t, "Ada Lovelace", sent.Body["payment_details"].(map[string]any)["card_name"])

	got, err := client.Bookings.Get(ctx, "31")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("12"), got.FlightID)

	cancelled, err := client.Bookings.Cancel(ctx, "31")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, "/api/bookings/31/cancel", api.last(t).Path)

	list, err := client.Bookings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAccount(t *testing.T) {
	added := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/users/me", http.StatusOK, map[string]any{
		"user": map[string]any{"id": "u-1", "email": "ada@example.com", "first_name": "Ada"},
	})
	api.handle(http.MethodPut, "/users/me", http.StatusOK, map[string]any{
		"user":    map[string]any{"id": "u-1", "email": "ada@example.com", "first_name": "Augusta"},
		"message": "Profile updated",
	})
	api.handle(http.MethodGet, "/users/favourites", http.StatusOK, map[string]any{
		"favourites": []any{map[string]any{"id": "f-1", "flight_id": "12", "added_at": added}},
	})
	api.handle(http.MethodPost, "/users/favourites", http.StatusCreated, map[string]any{
		"favourite": map[string]any{"id": "f-2", "flight_id": "13", "added_at": added},
	})
	api.handle(http.MethodDelete, "/users/favourites/{id}", http.StatusNoContent, nil)
	api.handle(http.MethodGet, "/users/alerts", http.StatusOK, map[string]any{
		"alerts": []any{map[string]any{
			"id":                  "a-1",
			"criteria":            map[string]any{"departure_airport": "JFK"},
			"email_notifications": true,
			"created_at":          added,
		}},
	})
	api.handle(http.MethodPost, "/users/alerts", http.StatusCreated, map[string]any{
		"alert": map[string]any{"id": "a-2", "criteria": map[string]any{"max_price": 500}, "created_at": added},
	})
	api.handle(http.MethodDelete, "/users/alerts/{id}", http.StatusOK, map[string]any{"message": "Alert deleted"})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())
	ctx := context.Background()

	profile, err := client.Account.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)

	name := "Augusta"
	updated, err := client.Account.UpdateProfile(ctx, domain.ProfileUpdate{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	sent := api.last(t)
	assert.Equal(t, map[string]any{"first_name": "Augusta"}, sent.Body)

	favourites, err := client.Account.Favourites(ctx)
	require.NoError(t, err)
	want := []domain.Favourite{{ID: "f-1", FlightID: "12", AddedAt: added}}
	if diff := cmp.Diff(want, favourites); diff != "" {
		t.Errorf("Favourites() mismatch (-want +got):\n%s", diff)
	}

	fav, err := client.Account.AddFavourite(ctx, "13")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("f-2"), fav.ID)
	assert.Equal(t, "13", api.last(t).Body["flight_id"])

	require.NoError(t, client.Account.RemoveFavourite(ctx, "f-2"))
	assert.Equal(t, http.MethodDelete, api.last(t).Method)
	assert.Equal(t, "/api/users/favourites/f-2", api.last(t).Path)

	alerts, err := client.Account.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "JFK", alerts[0].Criteria["departure_airport"])
	assert.True(t, alerts[0].EmailNotifications)

	alert, err := client.Account.CreateAlert(ctx, domain.AlertInput{
		Criteria:           domain.AlertCriteria{"max_price": 500},
		EmailNotifications: false,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("a-2"), alert.ID)

	require.NoError(t, client.Account.DeleteAlert(ctx, "a-2"))
}

func TestAccount_ListShapeMismatch(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/users/favourites", http.StatusOK, []any{})

	client := newTestClient(t, api.baseURL(), session.NewMemoryStore())

	_, err := client.Account.Favourites(context.Background())
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
}
