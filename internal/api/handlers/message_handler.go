package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openride/ride-server/internal/api/dto"
	"github.com/openride/ride-server/internal/domain/message"
	"github.com/openride/ride-server/pkg/errors"
	"github.com/openride/ride-server/pkg/logger"
	"github.com/openride/ride-server/pkg/websocket"
)

// SendMessage handles POST /api/rides/:id/messages
func (h *Handlers) SendMessage(c *gin.Context) {
	rideID, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.BadRequest("sender_id and content are required", err))
		return
	}

	r, err := h.findRide(c, rideID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sender, err := h.findUser(c, req.SenderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !r.IsParticipant(sender.ID) {
		h.respondError(c, errors.ErrNotRideMember)
		return
	}

	// the receiver is always the other party, never caller-supplied
	receiverID, ok := r.Counterpart(sender.ID)
	if !ok {
		h.respondError(c, errors.ErrNoReceiver)
		return
	}

	m := message.Message{
		RideID:     rideID,
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&m).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to save message", err))
		return
	}

	h.Logger.Info("Message sent",
		logger.String("ride_id", rideID.String()),
		logger.String("sender_id", sender.ID.String()),
		logger.String("receiver_id", receiverID.String()),
	)
	h.Metrics.RecordMessageSent(rideID.String())

	receiver, _ := h.findUser(c, receiverID)
	resp := dto.NewMessageResponse(&m, sender, receiver)

	// best-effort side channels; neither can fail the request
	if err := h.Notifier.Dispatch(c.Request.Context(), "message_sent", resp); err != nil {
		h.Logger.Warn("Message notification failed",
			logger.String("ride_id", rideID.String()),
			logger.Err(err),
		)
	}
	if h.Hub != nil {
		h.Hub.BroadcastToRide(rideID.String(), websocket.Event{
			Type: "message",
			Data: resp,
		})
	}

	c.JSON(http.StatusCreated, resp)
}

// ListMessages handles GET /api/rides/:id/messages
func (h *Handlers) ListMessages(c *gin.Context) {
	rideID, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if _, err := h.findRide(c, rideID); err != nil {
		h.respondError(c, err)
		return
	}

	var messages []message.Message
	if err := h.DB.WithContext(c.Request.Context()).
		Where("ride_id = ?", rideID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		h.respondError(c, errors.Internal("Failed to list messages", err))
		return
	}

	out := make([]*dto.MessageResponse, len(messages))
	for i := range messages {
		sender, _ := h.findUser(c, messages[i].SenderID)
		receiver, _ := h.findUser(c, messages[i].ReceiverID)
		out[i] = dto.NewMessageResponse(&messages[i], sender, receiver)
	}
	c.JSON(http.StatusOK, out)
}
