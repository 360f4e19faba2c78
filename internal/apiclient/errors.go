package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// NetworkErrorMessage is shown when no response arrived at all.
	NetworkErrorMessage = "Could not reach the booking service. Please try again later."
	// UnexpectedResponseMessage is shown when a 2xx body does not have the declared shape.
	UnexpectedResponseMessage = "The booking service returned an unexpected response."
	// ResponseTooLargeMessage is shown when a body exceeds the client's read limit.
	ResponseTooLargeMessage = "The booking service response was too large."
	credentialErrorMessage  = "Could not access the saved login. Please sign in again."
	requestErrorMessage     = "The request could not be prepared."
)

var (
	ErrUnexpectedResponse = errors.New("unexpected response shape")
	ErrResponseTooLarge   = errors.New("response body too large")
	ErrNotAuthenticated   = errors.New("not authenticated")
	// ErrNetwork marks failures where the request was sent but no complete
	// response came back.
	ErrNetwork = errors.New("booking api unreachable")
)

// Error is the single failure value every client call returns. StatusCode is 0
// when the request never got a response.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport reports whether the booking API could not be reached or its response
// could not be read. Credential and request-building failures are not transport
// failures.
func (e *Error) Transport() bool {
	return errors.Is(e.Err, ErrNetwork)
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newStatusError(status int, body []byte) *Error {
	msg := serverMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status code %d", status)
	}
	return &Error{
		StatusCode: status,
		Message:    msg,
		Err:        fmt.Errorf("unexpected status %d", status),
	}
}

// serverMessage digs the human-readable text out of an error body. The booking
// API uses "message"; its JWT layer answers with "msg".
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "msg"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
