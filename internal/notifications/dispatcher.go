// Package notifications turns storefront events into customer emails.
package notifications

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/repository"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type ProfileLookup interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
}

type Mailer interface {
	Send(ctx context.Context, to string, event kafka.StorefrontEvent) error
}

type Dispatcher struct {
	profiles ProfileLookup
	mailer   Mailer
}

func NewDispatcher(profiles ProfileLookup, mailer Mailer) *Dispatcher {
	return &Dispatcher{profiles: profiles, mailer: mailer}
}

// Handle processes one message. Undeliverable events are logged and skipped so
// that a single bad message never stalls the consumer group.
func (d *Dispatcher) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeEvent(msg)
	if err != nil {
		logrus.WithError(err).WithField("offset", msg.Offset).Warn("skipping undecodable event")
		return nil
	}
	log := logrus.WithFields(logrus.Fields{"event": event.Type, "user_id": event.UserID})

	to, err := d.recipient(ctx, event)
	if err != nil {
		log.WithError(err).Warn("no recipient for event")
		return nil
	}
	if err := d.mailer.Send(ctx, to, event); err != nil {
		log.WithError(err).Error("send notification")
	}
	return nil
}

func (d *Dispatcher) recipient(ctx context.Context, event kafka.StorefrontEvent) (string, error) {
	if event.Email != "" {
		return event.Email, nil
	}
	if event.UserID == "" {
		return "", errors.New("event carries neither email nor user id")
	}
	profile, err := d.profiles.Get(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", errors.New("user has no profile yet")
		}
		return "", err
	}
	if profile.Email == "" {
		return "", errors.New("profile has no email")
	}
	return profile.Email, nil
}
