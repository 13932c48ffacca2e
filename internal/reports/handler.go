package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetEventKPIs handles GET /reports/events/:id/kpis
// @Summary Event dashboard KPIs
// @Tags Reports
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} EventKPIs
// @Failure 403 {object} gin.H
// @Router /api/v1/reports/events/{id}/kpis [get]
func (h *Handler) GetEventKPIs(c *gin.Context) {
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

	kpis, err := h.service.EventKPIs(c.Request.Context(), uint(id), ac)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, kpis)
}

// ExportAttendees handles GET /reports/events/:id/attendees?format=csv|excel|pdf
func (h *Handler) ExportAttendees(c *gin.Context) {
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

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.service.ExportAttendees(c.Request.Context(), uint(id), format, ac)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// GetTicket handles GET /registrations/:id/ticket
func (h *Handler) GetTicket(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}

	data, err := h.service.Ticket(c.Request.Context(), uint(id), ac)
	if err != nil {
		if errors.Is(err, registration.ErrNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ticket_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) writeEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, event.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this event"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
	}
}
