package registration

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

// Register handles POST /events/:id/register
// @Summary Register for an event
// @Description Register the caller for an event. Fails when registration is closed or the event is full.
// @Tags Registration
// @Produce json
// @Param id path uint true "Event ID"
// @Success 201 {object} Registration
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/events/{id}/register [post]
func (h *Handler) Register(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	reg, err := h.service.Register(c.Request.Context(), uint(eventID), ac, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrEventNotAccepted):
			c.JSON(http.StatusConflict, gin.H{"error": "Event is not open for registration yet"})
		case errors.Is(err, ErrEventClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Registration is closed for this event"})
		case errors.Is(err, ErrEventFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Event is full"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "You are already registered for this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// ListMine handles GET /registrations/mine
func (h *Handler) ListMine(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	regs, err := h.service.ListMine(c.Request.Context(), ac)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": regs})
}

// ListForEvent handles GET /events/:id/registrations (organizer/admin)
func (h *Handler) ListForEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	regs, err := h.service.ListForEvent(c.Request.Context(), uint(eventID), ac)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, event.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": regs})
}
