package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListOrganizers handles GET /admin/organizers?status=&search=
// @Summary List organizers, optionally filtered by verification status or a name/email/organization search
// @Tags Admin
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/admin/organizers [get]
func (h *Handler) ListOrganizers(c *gin.Context) {
	organizers, err := h.service.ListOrganizers(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organizers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": organizers})
}

// ListPendingOrganizers handles GET /admin/organizers/pending
// @Summary List organizers awaiting verification
// @Tags Admin
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/admin/organizers/pending [get]
func (h *Handler) ListPendingOrganizers(c *gin.Context) {
	organizers, err := h.service.ListPendingOrganizers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending organizers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": organizers})
}

// ValidateOrganizer handles PATCH /admin/organizers/:id/validation
// @Summary Accept or decline an organizer
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path uint true "Organizer user ID"
// @Param request body ValidateRequest true "Decision"
// @Success 200 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/admin/organizers/{id}/validate [post]
func (h *Handler) ValidateOrganizer(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organizer ID"})
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ValidateOrganizer(c.Request.Context(), uint(id), req, ac, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "A decision has already been recorded"})
		case errors.Is(err, ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required when declining"})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Decision recorded"})
}

// ListPendingEvents handles GET /admin/events/pending
func (h *Handler) ListPendingEvents(c *gin.Context) {
	events, err := h.service.ListPendingEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ValidateEvent handles PATCH /admin/events/:id/validation
func (h *Handler) ValidateEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ValidateEvent(c.Request.Context(), uint(id), req, ac, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "A decision has already been recorded"})
		case errors.Is(err, ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required when declining"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Decision recorded"})
}

// GetStats handles GET /admin/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAnalytics handles GET /admin/analytics
// @Summary Platform analytics for the admin dashboard
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} PlatformAnalytics
// @Router /api/v1/admin/analytics [get]
func (h *Handler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
