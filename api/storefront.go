// Package api renders the storefront screens as JSON. Each browser gets its own
// credential, keyed by a session cookie, and every screen talks to the booking
// API through an apiclient bound to that credential.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/auth"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionIDKey = "storefront.session_id"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Publisher is the part of the Kafka producer the screens need.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type StorefrontHandler struct {
	baseURL    string
	sessions   session.Sessions
	cookie     config.SessionConfig
	clientOpts []apiclient.Option
	events     Publisher
	topic      string
}

type HandlerOption func(*StorefrontHandler)

func WithEvents(events Publisher, topic string) HandlerOption {
	return func(h *StorefrontHandler) {
		h.events = events
		h.topic = topic
	}
}

func WithClientOptions(opts ...apiclient.Option) HandlerOption {
	return func(h *StorefrontHandler) {
		h.clientOpts = append(h.clientOpts, opts...)
	}
}

type screen struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewStorefrontHandler(baseURL string, sessions session.Sessions, cookie config.SessionConfig, opts ...HandlerOption) (*StorefrontHandler, error) {
	if sessions == nil {
		return nil, errors.New("session registry is required")
	}
	h := &StorefrontHandler{
		baseURL:  baseURL,
		sessions: sessions,
		cookie:   cookie,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.cookie.CookieName == "" {
		h.cookie.CookieName = config.Default().Session.CookieName
	}

	// fail at startup rather than on the first screen
	if _, err := apiclient.New(baseURL, session.NewMemoryStore(), h.clientOpts...); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *StorefrontHandler) Register(router *gin.RouterGroup) {
	router.Use(h.browserSession)

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)
	router.POST("/auth/logout", h.logout)
	router.GET("/auth/session", h.sessionState)

	router.GET("/search", h.search)
	router.GET("/flights/:id", h.flight)

	router.GET("/book/:flightId", h.bookingForm)
	router.POST("/book/:flightId", h.book)

	router.GET("/account/:section", h.account)
	router.PUT("/account/profile", h.updateProfile)
	router.POST("/account/favourites", h.addFavourite)
	router.DELETE("/account/favourites/:id", h.removeFavourite)
	router.POST("/account/alerts", h.createAlert)
	router.DELETE("/account/alerts/:id", h.deleteAlert)
	router.POST("/account/bookings/:id/cancel", h.cancelBooking)
}

// browserSession makes sure every request carries a session id, issuing a new
// cookie when the browser has none or sent garbage.
func (h *StorefrontHandler) browserSession(c *gin.Context) {
	id, err := c.Cookie(h.cookie.CookieName)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
	}
	// re-sent on every request for a sliding expiry
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, id, int(h.cookie.TTL().Seconds()), "/", "", h.cookie.SecureCookie, true)
	c.Set(sessionIDKey, id)
	c.Next()
}

// withClient builds the browser's client or renders the failure itself.
func (h *StorefrontHandler) withClient(c *gin.Context) (*apiclient.Client, bool) {
	store := h.sessions.ForSession(c.GetString(sessionIDKey))
	client, err := apiclient.New(h.baseURL, store, h.clientOpts...)
	if err != nil {
		h.fail(c, err, "")
		return nil, false
	}
	return client, true
}

func (h *StorefrontHandler) ok(c *gin.Context, status int, data any) {
	c.JSON(status, screen{Status: statusSuccess, Data: data})
}

// fail renders err, preferring the booking API's own status and message.
// Failures that never produced an upstream status become 502.
func (h *StorefrontHandler) fail(c *gin.Context, err error, fallback string) {
	status := apiclient.StatusCode(err)
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	msg := apiclient.Message(err)
	if msg == "" {
		msg = fallback
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": c.FullPath(),
		"status":   status,
	}).WithError(err).Warn(msg)

	c.JSON(status, screen{Status: statusError, Error: msg})
}

func (h *StorefrontHandler) invalid(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, screen{Status: statusError, Error: msg})
}

// publish attributes the event to the logged-in user and sends it. Failures
// are logged and never surface to the shopper.
func (h *StorefrontHandler) publish(c *gin.Context, client *apiclient.Client, event kafka.StorefrontEvent) {
	if h.events == nil || h.topic == "" {
		return
	}
	ctx := c.Request.Context()
	if token, err := client.Auth.Token(ctx); err == nil && token != "" {
		if subject, err := auth.SubjectUnverified(token); err == nil {
			event.UserID = subject
		}
	}
	event.OccurredAt = now().UTC()

	if err := h.events.Publish(ctx, h.topic, event.Key(), event); err != nil {
		logrus.WithError(err).WithField("event", event.Type).Warn("failed to publish storefront event")
	}
}
