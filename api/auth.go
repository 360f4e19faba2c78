package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

var now = time.Now

type authState struct {
	Authenticated bool            `json:"authenticated"`
	Message       string          `json:"message,omitempty"`
	User          *domain.Profile `json:"user,omitempty"`
}

func (h *StorefrontHandler) register(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, "Please fill in all registration fields.")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.invalid(c, "Email and password are required.")
		return
	}

	client, ok := h.withClient(c)
	if !ok {
		return
	}
	res, err := client.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "An error occurred during registration. Please try again.")
		return
	}

	h.ok(c, http.StatusCreated, authState{
		Authenticated: res.AccessToken != "",
		Message:       res.Message,
		User:          res.User,
	})
}

func (h *StorefrontHandler) login(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		h.invalid(c, "Email and password are required.")
		return
	}

	client, ok := h.withClient(c)
	if !ok {
		return
	}
	res, err := client.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Invalid email or password. Please try again.")
		return
	}

	h.ok(c, http.StatusOK, authState{Authenticated: true, Message: res.Message, User: res.User})
}

// logout only forgets the browser's credential; the booking API has no
// server-side session to end.
func (h *StorefrontHandler) logout(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}
	if err := client.Auth.Logout(c.Request.Context()); err != nil {
		h.fail(c, err, "Could not log out. Please try again.")
		return
	}
	h.ok(c, http.StatusOK, authState{Authenticated: false})
}

func (h *StorefrontHandler) sessionState(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}
	authenticated, err := client.Auth.IsAuthenticated(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not read the saved login.")
		return
	}
	h.ok(c, http.StatusOK, authState{Authenticated: authenticated})
}
