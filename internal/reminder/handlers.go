package reminder

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
)

// Handler exposes the batch cycles as HTTP trigger endpoints so an external
// scheduler can invoke them in addition to the in-process cron. Trigger
// responses are always 200: cycle failures are logged and absorbed so the
// substrate's retry-on-error behavior is never engaged.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new trigger handler.
func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// TaskReminders handles POST /v1/triggers/task-reminders
// Runs one task reminder cycle immediately.
func (h *Handler) TaskReminders(c *gin.Context) {
	ctx := logger.WithTrigger(c.Request.Context(), "task-reminders")
	summary := h.service.RunTaskReminders(ctx, time.Now())
	c.JSON(http.StatusOK, summary)
}

// StreakWarnings handles POST /v1/triggers/streak-warnings
// Runs one streak warning cycle immediately.
func (h *Handler) StreakWarnings(c *gin.Context) {
	ctx := logger.WithTrigger(c.Request.Context(), "streak-warnings")
	summary := h.service.RunStreakWarnings(ctx, time.Now())
	c.JSON(http.StatusOK, summary)
}
