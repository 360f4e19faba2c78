package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/gin-gonic/gin"
)

const bookingFallback = "An error occurred while processing your booking. Please try again."

type bookRequest struct {
	NumPassengers  int                   `json:"num_passengers"`
	PaymentDetails domain.PaymentDetails `json:"payment_details"`
}

type bookingForm struct {
	Flight        *domain.Flight `json:"flight"`
	NumPassengers int            `json:"num_passengers"`
	TotalPrice    float64        `json:"total_price"`
}

func (h *StorefrontHandler) bookingForm(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	flight, err := client.Flights.Get(c.Request.Context(), c.Param("flightId"))
	if err != nil {
		h.fail(c, err, "Could not load flight information for booking.")
		return
	}
	h.ok(c, http.StatusOK, bookingForm{Flight: flight, NumPassengers: 1, TotalPrice: flight.ReducedPrice})
}

// book prices the booking from the flight's current reduced fare, the same way
// the booking form shows it, then submits it.
func (h *StorefrontHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, "Please check the booking details.")
		return
	}
	if req.NumPassengers < 1 {
		h.invalid(c, "Number of passengers must be at least 1.")
		return
	}

	client, ok := h.withClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	flight, err := client.Flights.Get(ctx, c.Param("flightId"))
	if err != nil {
		h.fail(c, err, "Could not load flight information for booking.")
		return
	}

	booking, err := client.Bookings.Create(ctx, domain.BookingInput{
		FlightID:       flight.ID,
		SeatsBooked:    req.NumPassengers,
		PaymentDetails: req.PaymentDetails,
		TotalPrice:     flight.ReducedPrice * float64(req.NumPassengers),
	})
	if err != nil {
		h.fail(c, err, bookingFallback)
		return
	}

	h.publish(c, client, kafka.StorefrontEvent{
		Type:       kafka.EventBookingCreated,
		BookingID:  booking.ID.String(),
		FlightID:   flight.ID.String(),
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
	})
	h.ok(c, http.StatusCreated, gin.H{"booking": booking})
}

func (h *StorefrontHandler) cancelBooking(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	booking, err := client.Bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Could not cancel the booking. Please try again.")
		return
	}

	h.publish(c, client, kafka.StorefrontEvent{
		Type:      kafka.EventBookingCancelled,
		BookingID: booking.ID.String(),
		FlightID:  booking.FlightID.String(),
		Status:    string(booking.Status),
	})
	h.ok(c, http.StatusOK, gin.H{"booking": booking})
}
