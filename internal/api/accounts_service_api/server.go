package accounts_service_api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/internal/auth"
	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/repository"
	"github.com/Domenick1991/airbooking-storefront/internal/service/accounts"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server exposes the account use cases as the /users routes the storefront
// client calls. Every route requires a bearer token.
type Server struct {
	accounts accounts.AccountUseCase
	verifier *auth.Verifier
}

type addFavouriteRequest struct {
	FlightID domain.ID `json:"flight_id"`
}

func NewServer(accounts accounts.AccountUseCase, verifier *auth.Verifier) *Server {
	return &Server{accounts: accounts, verifier: verifier}
}

func (s *Server) Register(router *gin.RouterGroup) {
	users := router.Group("/users", auth.Middleware(s.verifier))
	users.GET("/me", s.profile)
	users.PUT("/me", s.updateProfile)
	users.GET("/favourites", s.favourites)
	users.POST("/favourites", s.addFavourite)
	users.DELETE("/favourites/:id", s.removeFavourite)
	users.GET("/alerts", s.alerts)
	users.POST("/alerts", s.createAlert)
	users.DELETE("/alerts/:id", s.deleteAlert)
}

func (s *Server) profile(c *gin.Context) {
	profile, err := s.accounts.Profile(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) updateProfile(c *gin.Context) {
	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, err := s.accounts.UpdateProfile(c.Request.Context(), caller(c), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) favourites(c *gin.Context) {
	favourites, err := s.accounts.Favourites(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favourites": favourites})
}

func (s *Server) addFavourite(c *gin.Context) {
	var req addFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	fav, created, err := s.accounts.AddFavourite(c.Request.Context(), caller(c), req.FlightID.String())
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"favourite": fav})
}

func (s *Server) removeFavourite(c *gin.Context) {
	if err := s.accounts.RemoveFavourite(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) alerts(c *gin.Context) {
	alerts, err := s.accounts.Alerts(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (s *Server) createAlert(c *gin.Context) {
	var in domain.AlertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	alert, err := s.accounts.CreateAlert(c.Request.Context(), caller(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

func (s *Server) deleteAlert(c *gin.Context) {
	if err := s.accounts.DeleteAlert(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func caller(c *gin.Context) accounts.User {
	return accounts.User{
		ID:    auth.UserID(c),
		Email: auth.Email(c),
		Token: auth.Token(c),
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounts.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, accounts.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Flight not found"})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("account request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
