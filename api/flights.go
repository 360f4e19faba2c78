package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type searchResults struct {
	Query   string          `json:"query"`
	Flights []domain.Flight `json:"flights"`
}

// search forwards the browser's query string to the booking API untouched.
func (h *StorefrontHandler) search(c *gin.Context) {
	query := c.Request.URL.Query()
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	flights, err := client.Flights.Search(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, "Could not load flight results. Please try adjusting your search or try again later.")
		return
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	h.ok(c, http.StatusOK, searchResults{Query: describeSearch(query), Flights: flights})
}

func (h *StorefrontHandler) flight(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	flight, err := client.Flights.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Could not load flight details. The flight may no longer be available or the link is incorrect.")
		return
	}
	h.ok(c, http.StatusOK, gin.H{"flight": flight})
}

// describeSearch renders the heading shown above the results, e.g.
// "From: JFK, To: LHR, Passengers: 2".
func describeSearch(query url.Values) string {
	var parts []string
	if v := query.Get("departure_airport"); v != "" {
		parts = append(parts, "From: "+v)
	}
	if v := query.Get("arrival_airport"); v != "" {
		parts = append(parts, "To: "+v)
	}
	if v := query.Get("departure_date"); v != "" {
		if d, err := time.Parse(time.DateOnly, v); err == nil {
			v = d.Format("January 2, 2006")
		}
		parts = append(parts, "Date: "+v)
	}
	if v := query.Get("seats_available_gte"); v != "" {
		parts = append(parts, "Passengers: "+v)
	}
	if len(parts) == 0 {
		return "All available flights"
	}
	return strings.Join(parts, ", ")
}
