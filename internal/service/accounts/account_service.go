package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrFlightNotFound = errors.New("flight not found")
)

// User is the authenticated caller as established by the bearer token.
type User struct {
	ID    string
	Email string
	Token string
}

type AccountUseCase interface {
	Profile(ctx context.Context, user User) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, user User, upd domain.ProfileUpdate) (*domain.Profile, error)
	Favourites(ctx context.Context, user User) ([]domain.Favourite, error)
	AddFavourite(ctx context.Context, user User, flightID string) (*domain.Favourite, bool, error)
	RemoveFavourite(ctx context.Context, user User, id string) error
	Alerts(ctx context.Context, user User) ([]domain.Alert, error)
	CreateAlert(ctx context.Context, user User, in domain.AlertInput) (*domain.Alert, error)
	DeleteAlert(ctx context.Context, user User, id string) error
}

// FlightLookup fetches a flight from the booking API on behalf of the caller.
// It returns ErrFlightNotFound when the API does not know the flight.
type FlightLookup interface {
	Flight(ctx context.Context, token, flightID string) (*domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AccountService struct {
	profiles   repository.ProfileRepository
	favourites repository.FavouriteRepository
	alerts     repository.AlertRepository
	flights    FlightLookup
	producer   Producer
	topic      string
	now        func() time.Time
	newID      func() string
}

type AccountServiceOption func(*AccountService)

func WithEvents(producer Producer, topic string) AccountServiceOption {
	return func(s *AccountService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewAccountService(
	profiles repository.ProfileRepository,
	favourites repository.FavouriteRepository,
	alerts repository.AlertRepository,
	flights FlightLookup,
	opts ...AccountServiceOption,
) *AccountService {
	service := &AccountService{
		profiles:   profiles,
		favourites: favourites,
		alerts:     alerts,
		flights:    flights,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *AccountService) Profile(ctx context.Context, user User) (*domain.Profile, error) {
	return s.profiles.GetOrCreate(ctx, user.ID, user.Email)
}

func (s *AccountService) UpdateProfile(ctx context.Context, user User, upd domain.ProfileUpdate) (*domain.Profile, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if _, err := s.profiles.GetOrCreate(ctx, user.ID, user.Email); err != nil {
		return nil, err
	}
	return s.profiles.Update(ctx, user.ID, upd)
}

func (s *AccountService) Favourites(ctx context.Context, user User) ([]domain.Favourite, error) {
	return s.favourites.List(ctx, user.ID)
}

// AddFavourite saves a flight for the user. Saving the same flight twice returns
// the first favourite and created=false.
func (s *AccountService) AddFavourite(ctx context.Context, user User, flightID string) (*domain.Favourite, bool, error) {
	if flightID == "" {
		return nil, false, fmt.Errorf("%w: flight_id is required", ErrInvalidInput)
	}

	flight, err := s.flights.Flight(ctx, user.Token, flightID)
	if err != nil {
		return nil, false, err
	}

	fav, created, err := s.favourites.Add(ctx, user.ID, domain.Favourite{
		ID:                domain.ID(s.newID()),
		FlightID:          flight.ID,
		FlightNumber:      flight.FlightNumber,
		DepartureAirport:  flight.DepartureAirport,
		ArrivalAirport:    flight.ArrivalAirport,
		DepartureDatetime: flight.DepartureDatetime,
		ReducedPrice:      flight.ReducedPrice,
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		s.publish(ctx, kafka.StorefrontEvent{
			Type:     kafka.EventFavouriteAdded,
			UserID:   user.ID,
			Email:    user.Email,
			FlightID: string(fav.FlightID),
		})
	}
	return fav, created, nil
}

func (s *AccountService) RemoveFavourite(ctx context.Context, user User, id string) error {
	return s.favourites.Remove(ctx, user.ID, id)
}

func (s *AccountService) Alerts(ctx context.Context, user User) ([]domain.Alert, error) {
	return s.alerts.List(ctx, user.ID)
}

func (s *AccountService) CreateAlert(ctx context.Context, user User, in domain.AlertInput) (*domain.Alert, error) {
	if len(in.Criteria) == 0 {
		return nil, fmt.Errorf("%w: criteria is required", ErrInvalidInput)
	}

	alert := &domain.Alert{
		ID:                 domain.ID(s.newID()),
		Criteria:           in.Criteria,
		EmailNotifications: in.EmailNotifications,
	}
	if err := s.alerts.Create(ctx, user.ID, alert); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.StorefrontEvent{
		Type:    kafka.EventAlertCreated,
		UserID:  user.ID,
		Email:   user.Email,
		AlertID: string(alert.ID),
	})
	return alert, nil
}

// DeleteAlert is idempotent: removing an unknown alert is not an error.
func (s *AccountService) DeleteAlert(ctx context.Context, user User, id string) error {
	return s.alerts.Delete(ctx, user.ID, id)
}

func (s *AccountService) publish(ctx context.Context, event kafka.StorefrontEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.producer.Publish(ctx, s.topic, event.Key(), event); err != nil {
		logrus.WithError(err).WithField("event", event.Type).Warn("failed to publish account event")
	}
}

var _ AccountUseCase = (*AccountService)(nil)
