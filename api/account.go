package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	sectionProfile    = "profile"
	sectionBookings   = "bookings"
	sectionFavourites = "favourites"
	sectionAlerts     = "alerts"
	sectionOverview   = "overview"
)

// panel is one part of the account screen. A panel that failed to load carries
// its own error and does not take the rest of the screen down with it.
type panel struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type panelLoader struct {
	fallback string
	load     func(ctx context.Context, client *apiclient.Client) (any, error)
}

var panelLoaders = map[string]panelLoader{
	sectionProfile: {
		fallback: "Failed to load profile.",
		load: func(ctx context.Context, client *apiclient.Client) (any, error) {
			return client.Account.Profile(ctx)
		},
	},
	sectionBookings: {
		fallback: "Failed to load bookings.",
		load: func(ctx context.Context, client *apiclient.Client) (any, error) {
			return client.Bookings.List(ctx)
		},
	},
	sectionFavourites: {
		fallback: "Failed to load favourites.",
		load: func(ctx context.Context, client *apiclient.Client) (any, error) {
			return client.Account.Favourites(ctx)
		},
	},
	sectionAlerts: {
		fallback: "Failed to load alerts.",
		load: func(ctx context.Context, client *apiclient.Client) (any, error) {
			return client.Account.Alerts(ctx)
		},
	},
}

// sectionPanels lists what each account tab shows. The profile header is on
// every tab.
func sectionPanels(section string) ([]string, bool) {
	switch section {
	case sectionProfile:
		return []string{sectionProfile}, true
	case sectionBookings, sectionFavourites, sectionAlerts:
		return []string{sectionProfile, section}, true
	case sectionOverview:
		return []string{sectionProfile, sectionBookings, sectionFavourites, sectionAlerts}, true
	default:
		return nil, false
	}
}

func (h *StorefrontHandler) account(c *gin.Context) {
	names, known := sectionPanels(c.Param("section"))
	if !known {
		c.JSON(http.StatusNotFound, screen{Status: statusError, Error: "Unknown account section."})
		return
	}
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	panels := make([]panel, len(names))
	var g errgroup.Group
	for i, name := range names {
		loader := panelLoaders[name]
		g.Go(func() error {
			data, err := loader.load(c.Request.Context(), client)
			if err != nil {
				msg := apiclient.Message(err)
				if msg == "" {
					msg = loader.fallback
				}
				logrus.WithError(err).WithField("panel", name).Warn("account panel failed")
				panels[i] = panel{Error: msg}
				return nil
			}
			panels[i] = panel{Data: data}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]panel, len(names))
	for i, name := range names {
		out[name] = panels[i]
	}
	h.ok(c, http.StatusOK, out)
}

func (h *StorefrontHandler) updateProfile(c *gin.Context) {
	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.invalid(c, "Please check the profile details.")
		return
	}
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	profile, err := client.Account.UpdateProfile(c.Request.Context(), upd)
	if err != nil {
		h.fail(c, err, "Failed to update profile.")
		return
	}
	h.ok(c, http.StatusOK, gin.H{"user": profile})
}

func (h *StorefrontHandler) addFavourite(c *gin.Context) {
	var req struct {
		FlightID domain.ID `json:"flight_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FlightID == "" {
		h.invalid(c, "A flight is required.")
		return
	}
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	fav, err := client.Account.AddFavourite(c.Request.Context(), req.FlightID.String())
	if err != nil {
		h.fail(c, err, "Failed to save favourite.")
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"favourite": fav})
}

func (h *StorefrontHandler) removeFavourite(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}
	if err := client.Account.RemoveFavourite(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to remove favourite.")
		return
	}
	h.ok(c, http.StatusOK, nil)
}

func (h *StorefrontHandler) createAlert(c *gin.Context) {
	var in domain.AlertInput
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Criteria) == 0 {
		h.invalid(c, "Alert criteria are required.")
		return
	}
	client, ok := h.withClient(c)
	if !ok {
		return
	}

	alert, err := client.Account.CreateAlert(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "Failed to create alert.")
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"alert": alert})
}

func (h *StorefrontHandler) deleteAlert(c *gin.Context) {
	client, ok := h.withClient(c)
	if !ok {
		return
	}
	if err := client.Account.DeleteAlert(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete alert.")
		return
	}
	h.ok(c, http.StatusOK, nil)
}
