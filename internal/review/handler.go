package review

import (
	"errors"
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

// CreateReview handles POST /events/:id/reviews
// @Summary Review an event
// @Description Leave a review. Only attendees who checked in may review, once per event.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path uint true "Event ID"
// @Param request body CreateReviewRequest true "Review payload"
// @Success 201 {object} Review
// @Failure 403 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/events/{id}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
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

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rev, err := h.service.CreateReview(c.Request.Context(), uint(eventID), &req, ac, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrReviewClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Reviews are closed for this event"})
		case errors.Is(err, registration.ErrNotRegistered):
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not registered for this event"})
		case errors.Is(err, ErrNotCheckedIn):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only attendees who checked in may review"})
		case errors.Is(err, ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, rev)
}

// ListByEvent handles GET /events/:id/reviews
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	reviews, err := h.service.ListByEvent(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

// GetSummary handles GET /events/:id/reviews/summary
func (h *Handler) GetSummary(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
