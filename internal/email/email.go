package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Sender struct {
	logger logrus.FieldLogger
}

func NewSender() *Sender {
	return &Sender{logger: logrus.StandardLogger()}
}

func (s *Sender) Send(ctx context.Context, to string, event kafka.StorefrontEvent) error {
	if to == "" {
		return fmt.Errorf("no recipient for %s event", event.Type)
	}
	s.logger.WithFields(logrus.Fields{"to": to, "event": event.Type}).Info(Subject(event))
	return nil
}

func Subject(event kafka.StorefrontEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Your booking %s for flight %s is %s", event.BookingID, event.FlightID, event.Status)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Your booking %s has been cancelled", event.BookingID)
	case kafka.EventAlertCreated:
		return "You are subscribed to a new flight alert"
	case kafka.EventFavouriteAdded:
		return fmt.Sprintf("Flight %s saved to your favourites", event.FlightID)
	default:
		return fmt.Sprintf("Account activity: %s", event.Type)
	}
}
