package notify

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sanjeevan43/LifeFlow/internal/errors"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
)

// Handler handles HTTP requests for the callable send path and the
// user-created event.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SendNotification handles POST /v1/notifications/send
// Sends one notification to one user and returns the delivery identifier.
func (h *Handler) SendNotification(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("notify-handler")

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", slog.String("error", err.Error()))
		errors.AbortWithBadRequest(c, "invalid request body")
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), req.UserID)
	messageID, err := h.service.SendToUser(ctx, req.UserID, req.Title, req.Body, req.Data)
	if err != nil {
		log.Warn("direct send rejected",
			slog.String("user_id", req.UserID),
			slog.String("kind", string(errors.KindOf(err))),
			slog.String("error", err.Error()))
		errors.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SendResponse{
		Success:   true,
		MessageID: messageID,
	})
}

// UserCreated handles POST /v1/events/user-created
// Runs the welcome handshake for the new user. The handshake blocks this
// invocation for the grace period; the response is 200 regardless of whether
// a welcome was ultimately sent.
func (h *Handler) UserCreated(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("notify-handler")

	var event UserCreatedEvent
	if err := c.ShouldBindJSON(&event); err != nil || event.UserID == "" {
		log.Error("invalid user-created event")
		errors.AbortWithBadRequest(c, "userId is required")
		return
	}

	ctx := logger.WithTrigger(logger.WithUserID(c.Request.Context(), event.UserID), "user-created")
	if err := h.service.WelcomeNewUser(ctx, event.UserID); err != nil {
		// Only a cancelled context reaches here; the handshake absorbs
		// everything else.
		log.Warn("welcome handshake interrupted",
			slog.String("user_id", event.UserID),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
