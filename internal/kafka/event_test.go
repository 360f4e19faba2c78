package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent(kafka.Message{Value: []byte(`{"type":"booking_created","user_id":"42","booking_id":"7","occurred_at":"2026-10-15T10:00:00Z"}`)})
	require.NoError(t, err)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, "7", event.BookingID)
	assert.Equal(t, time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC), event.OccurredAt.UTC())

	_, err = DecodeEvent(kafka.Message{Value: []byte(`{"user_id":"42"}`)})
	assert.ErrorContains(t, err, "missing type")

	_, err = DecodeEvent(kafka.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}

func TestStorefrontEvent_Key(t *testing.T) {
	assert.Equal(t, "42", StorefrontEvent{Type: EventAlertCreated, UserID: "42"}.Key())
	assert.Equal(t, EventAlertCreated, StorefrontEvent{Type: EventAlertCreated}.Key())
}
