package handlers

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openride/ride-server/internal/domain/ride"
	"github.com/openride/ride-server/internal/domain/user"
	"github.com/openride/ride-server/internal/service/geocoding"
	"github.com/openride/ride-server/internal/service/notify"
	"github.com/openride/ride-server/internal/service/routing"
	"github.com/openride/ride-server/pkg/errors"
	"github.com/openride/ride-server/pkg/logger"
	"github.com/openride/ride-server/pkg/monitoring"
	"github.com/openride/ride-server/pkg/websocket"
)

// Handlers holds all handler dependencies
type Handlers struct {
	DB        *gorm.DB
	Logger    *logger.Logger
	Routing   *routing.Client
	Geocoding *geocoding.Client
	Notifier  *notify.Notifier
	Hub       *websocket.Hub
	Metrics   *monitoring.NewRelicApp
}

// NewHandlers creates a new Handlers instance
func NewHandlers(db *gorm.DB, log *logger.Logger, routingClient *routing.Client, geocodingClient *geocoding.Client, notifier *notify.Notifier, hub *websocket.Hub, metrics *monitoring.NewRelicApp) *Handlers {
	return &Handlers{
		DB:        db,
		Logger:    log,
		Routing:   routingClient,
		Geocoding: geocodingClient,
		Notifier:  notifier,
		Hub:       hub,
		Metrics:   metrics,
	}
}

// respondError converts any error to the {"error": ...} body with the
// AppError's status; unclassified errors become a 500.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr.Status >= 500 {
		h.Logger.Error("Request failed", logger.Err(err), logger.String("path", c.FullPath()))
	}
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}

// parseID parses a path id parameter
func parseID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, errors.BadRequest("Invalid id in path", err)
	}
	return id, nil
}

// findUser loads a user row, mapping a missing row to the app error
func (h *Handlers) findUser(c *gin.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := h.DB.WithContext(c.Request.Context()).First(&u, "id = ?", id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.Internal("Failed to load user", err)
	}
	return &u, nil
}

// findRide loads a ride row, mapping a missing row to the app error
func (h *Handlers) findRide(c *gin.Context, id uuid.UUID) (*ride.Ride, error) {
	var r ride.Ride
	if err := h.DB.WithContext(c.Request.Context()).First(&r, "id = ?", id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRideNotFound
		}
		return nil, errors.Internal("Failed to load ride", err)
	}
	return &r, nil
}

// loadRideParties fetches the passenger and driver rows for a ride view.
// Either may come back nil when the referenced account was deleted.
func (h *Handlers) loadRideParties(c *gin.Context, r *ride.Ride) (*user.User, *user.User) {
	var passenger, driver *user.User
	if u, err := h.findUser(c, r.PassengerID); err == nil {
		passenger = u
	}
	if r.DriverID != nil {
		if u, err := h.findUser(c, *r.DriverID); err == nil {
			driver = u
		}
	}
	return passenger, driver
}
