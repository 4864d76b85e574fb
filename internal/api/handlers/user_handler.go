package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openride/ride-server/internal/api/dto"
	"github.com/openride/ride-server/internal/domain/message"
	"github.com/openride/ride-server/internal/domain/ride"
	"github.com/openride/ride-server/internal/domain/user"
	"github.com/openride/ride-server/pkg/errors"
	"github.com/openride/ride-server/pkg/logger"
)

// CreateUser handles POST /api/users
func (h *Handlers) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("username, email and user_type are required", err))
		return
	}

	userType := user.Type(req.UserType)
	if !userType.IsValid() {
		h.respondError(c, errors.ErrInvalidUserType)
		return
	}

	if err := h.checkDuplicates(c, req.Username, req.Email, uuid.Nil); err != nil {
		h.respondError(c, err)
		return
	}

	u := user.User{
		Username:    req.Username,
		Email:       req.Email,
		UserType:    userType,
		IsAvailable: req.IsAvailable,
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&u).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to create user", err))
		return
	}

	h.Logger.Info("User created",
		logger.String("user_id", u.ID.String()),
		logger.String("username", u.Username),
		logger.String("user_type", string(u.UserType)),
	)

	c.JSON(http.StatusCreated, dto.NewUserResponse(&u))
}

// ListUsers handles GET /api/users
func (h *Handlers) ListUsers(c *gin.Context) {
	var users []user.User
	if err := h.DB.WithContext(c.Request.Context()).Order("created_at").Find(&users).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to list users", err))
		return
	}

	out := make([]*dto.UserResponse, len(users))
	for i := range users {
		out[i] = dto.NewUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetUser handles GET /api/users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.findUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// UpdateUser handles PUT /api/users/:id
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("Invalid request payload", err))
		return
	}

	u, err := h.findUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// duplicate checks exclude the user's own row
	checkUsername, checkEmail := "", ""
	if req.Username != nil {
		checkUsername = *req.Username
	}
	if req.Email != nil {
		checkEmail = *req.Email
	}
	if err := h.checkDuplicates(c, checkUsername, checkEmail, u.ID); err != nil {
		h.respondError(c, err)
		return
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.IsAvailable != nil {
		u.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.WithContext(c.Request.Context()).Save(u).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to update user", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// DeleteUser handles DELETE /api/users/:id.
//
// Dependent rows do not survive the account: messages the user took part
// in are removed, rides they requested are removed along with those
// rides' messages, and rides they drove lose their driver reference.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.findUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	txErr := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&message.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ride_id IN (?)",
			tx.Model(&ride.Ride{}).Select("id").Where("passenger_id = ?", id),
		).Delete(&message.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("passenger_id = ?", id).Delete(&ride.Ride{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&ride.Ride{}).Where("driver_id = ?", id).Update("driver_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user.User{}, "id = ?", id).Error
	})
	if txErr != nil {
		h.respondError(c, errors.Internal("Failed to delete user", txErr))
		return
	}

	h.Logger.Info("User deleted",
		logger.String("user_id", id.String()),
		logger.String("username", u.Username),
	)

	c.Status(http.StatusNoContent)
}

// UpdateUserLocation handles PUT /api/users/:id/location
func (h *Handlers) UpdateUserLocation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("latitude and longitude are required", err))
		return
	}

	u, err := h.findUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	u.SetLocation(*req.Latitude, *req.Longitude, time.Now().UTC())

	if err := h.DB.WithContext(c.Request.Context()).Save(u).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to update location", err))
		return
	}

	h.Logger.Info("User location updated",
		logger.String("user_id", id.String()),
		logger.Float64("latitude", *req.Latitude),
		logger.Float64("longitude", *req.Longitude),
	)

	c.JSON(http.StatusOK, dto.LocationResponse{
		UserID:            u.ID,
		Latitude:          *u.Latitude,
		Longitude:         *u.Longitude,
		LocationUpdatedAt: *u.LocationUpdatedAt,
	})
}

// GetUserLocation handles GET /api/users/:id/location
func (h *Handlers) GetUserLocation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.findUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !u.HasLocation() {
		h.respondError(c, errors.ErrLocationNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.LocationResponse{
		UserID:            u.ID,
		Latitude:          *u.Latitude,
		Longitude:         *u.Longitude,
		LocationUpdatedAt: *u.LocationUpdatedAt,
	})
}

// checkDuplicates enforces global username/email uniqueness. Matching is
// case-exact. excludeID skips the user's own row on update.
func (h *Handlers) checkDuplicates(c *gin.Context, username, email string, excludeID uuid.UUID) error {
	ctx := c.Request.Context()

	if username != "" {
		var existing user.User
		err := h.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
		if err == nil && existing.ID != excludeID {
			return errors.ErrUsernameTaken
		}
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Internal("Failed to check username", err)
		}
	}

	if email != "" {
		var existing user.User
		err := h.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
		if err == nil && existing.ID != excludeID {
			return errors.ErrEmailTaken
		}
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Internal("Failed to check email", err)
		}
	}

	return nil
}
