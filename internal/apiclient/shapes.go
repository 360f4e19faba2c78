package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// shape is the declared JSON layout of one endpoint's success body.
type shape struct {
	name   string
	schema *gojsonschema.Schema
}

func mustShape(name string, schema any) *shape {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("apiclient: invalid %s schema: %v", name, err))
	}
	return &shape{name: name, schema: s}
}

func (s *shape) decode(body []byte, out any) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%s: %w: %v", s.name, ErrUnexpectedResponse, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("%s: %w: %s", s.name, ErrUnexpectedResponse, strings.Join(problems, "; "))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: %v", s.name, ErrUnexpectedResponse, err)
	}
	return nil
}

func object(required ...string) map[string]any {
	schema := map[string]any{"type": "object"}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func wrappedRecord(name, key string, required ...string) *shape {
	return mustShape(name, map[string]any{
		"type":       "object",
		"required":   []string{key},
		"properties": map[string]any{key: object(required...)},
	})
}

func wrappedList(name, key string, required ...string) *shape {
	return mustShape(name, map[string]any{
		"type":     "object",
		"required": []string{key},
		"properties": map[string]any{
			key: map[string]any{"type": "array", "items": object(required...)},
		},
	})
}

var (
	loginShape = mustShape("login", map[string]any{
		"type":     "object",
		"required": []string{"access_token"},
		"properties": map[string]any{
			"access_token": map[string]any{"type": "string", "minLength": 1},
			"message":      map[string]any{"type": "string"},
			"user":         object(),
		},
	})
	registerShape = mustShape("register", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"access_token": map[string]any{"type": "string"},
			"message":      map[string]any{"type": "string"},
			"user":         object(),
		},
	})

	flightListShape = wrappedList("flight search", "flights", "id")
	flightShape     = wrappedRecord("flight detail", "flight", "id")

	bookingShape     = wrappedRecord("booking", "booking", "id")
	bookingListShape = wrappedList("booking list", "bookings", "id")

	profileShape       = wrappedRecord("profile", "user", "id")
	favouriteShape     = wrappedRecord("favourite", "favourite", "id", "flight_id")
	favouriteListShape = wrappedList("favourite list", "favourites", "id", "flight_id")
	alertShape         = wrappedRecord("alert", "alert", "id")
	alertListShape     = wrappedList("alert list", "alerts", "id")
)
