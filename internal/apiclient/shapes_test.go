package apiclient

import (
	"errors"
	"testing"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_Decode(t *testing.T) {
	testCases := []struct {
		name    string
		shape   *shape
		body    string
		wantErr bool
	}{
		{name: "flight wrapped", shape: flightShape, body: `{"flight":{"id":1}}`},
		{name: "flight bare", shape: flightShape, body: `{"id":1}`, wantErr: true},
		{name: "flight without id", shape: flightShape, body: `{"flight":{"flight_number":"EL1"}}`, wantErr: true},
		{name: "flights not array", shape: flightListShape, body: `{"flights":{}}`, wantErr: true},
		{name: "empty flights", shape: flightListShape, body: `{"flights":[]}`},
		{name: "login token", shape: loginShape, body: `{"access_token":"x"}`},
		{name: "login empty token", shape: loginShape, body: `{"access_token":""}`, wantErr: true},
		{name: "register message only", shape: registerShape, body: `{"message":"ok"}`},
		{name: "register token wrong type", shape: registerShape, body: `{"access_token":5}`, wantErr: true},
		{name: "favourite needs flight", shape: favouriteShape, body: `{"favourite":{"id":"f"}}`, wantErr: true},
		{name: "not json", shape: bookingShape, body: `<html>`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out map[string]any
			err := tc.shape.decode([]byte(tc.body), &out)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnexpectedResponse))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShape_DecodeTypeMismatch(t *testing.T) {
	// passes the schema but seats_available is not a number
	var out struct {
		Flight domain.Flight `json:"flight"`
	}
	err := flightShape.decode([]byte(`{"flight":{"id":"1","seats_available":"many"}}`), &out)
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "a", serverMessage([]byte(`{"message":"a","error":"b"}`)))
	assert.Equal(t, "b", serverMessage([]byte(`{"error":"b","msg":"c"}`)))
	assert.Equal(t, "c", serverMessage([]byte(`{"msg":"c"}`)))
	assert.Empty(t, serverMessage([]byte(`{"message":{"nested":true}}`)))
	assert.Empty(t, serverMessage([]byte(`not json`)))
	assert.Empty(t, serverMessage(nil))
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "wrapped", Message(&Error{Message: "wrapped"}))
}
