package event

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/upload"
	"github.com/AvalonleFae/ezevent/middleware"
)

type Handler struct {
	service   *Service
	uploadSvc upload.Service
}

func NewHandler(service *Service, uploadSvc upload.Service) *Handler {
	return &Handler{service: service, uploadSvc: uploadSvc}
}

// CreateEvent handles POST /events
// @Summary Create a new event
// @Description Create an event (verified organizers only). The event stays pending until an admin accepts it.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} Event
// @Failure 400 {object} gin.H
// @Failure 403 {object} gin.H
// @Router /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.CreateEvent(c.Request.Context(), &req, ac, c.ClientIP())
	if err != nil {
		if errors.Is(err, auth.ErrNotVerified) {
			msg := "Your organizer account has not been verified"
			switch {
			case errors.Is(err, auth.ErrVerificationPending):
				msg = "Your organizer account is still awaiting verification"
			case errors.Is(err, auth.ErrVerificationDeclined):
				msg = "Your organizer account verification was declined"
			}
			c.JSON(http.StatusForbidden, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// UpdateEvent handles PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
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

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = uint(id)

	e, err := h.service.UpdateEvent(c.Request.Context(), &req, ac, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this event"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, e)
}

// ListPublic handles GET /events - accepted events only
// @Summary Browse events
// @Tags Event
// @Produce json
// @Param category_id query uint false "Filter by category"
// @Param university_id query uint false "Filter by university"
// @Param search query string false "Search by name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} gin.H
// @Router /api/v1/events [get]
func (h *Handler) ListPublic(c *gin.Context) {
	filter := EventFilter{Page: 1, Limit: 20}

	if idStr := c.Query("category_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if idStr := c.Query("university_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			filter.UniversityID = uint(id)
		}
	}
	filter.Search = c.Query("search")

	if fromStr := c.Query("from_date"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.FromDate = &from
		}
	}
	if toStr := c.Query("to_date"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			filter.ToDate = &to
		}
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	events, total, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  events,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// GetEvent handles GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	e, err := h.service.GetEvent(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// GetAvailability handles GET /events/:id/availability
func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	availability, e, err := h.service.Availability(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availability":     availability,
		"capacity":         e.Capacity,
		"registered_count": e.RegisteredCount,
	})
}

// ListMine handles GET /events/mine - organizer's own events
func (h *Handler) ListMine(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	events, err := h.service.ListMine(c.Request.Context(), ac)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

type toggleReq struct {
	Open *bool `json:"open" binding:"required"`
}

// ToggleRegistration handles PATCH /events/:id/registration-open
func (h *Handler) ToggleRegistration(c *gin.Context) {
	h.toggle(c, h.service.SetRegistrationOpen)
}

// ToggleReview handles PATCH /events/:id/review-open
func (h *Handler) ToggleReview(c *gin.Context) {
	h.toggle(c, h.service.SetReviewOpen)
}

func (h *Handler) toggle(c *gin.Context, fn func(ctx context.Context, eventID uint, open bool, ac middleware.AccessContext, ip string) error) {
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

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open field is required"})
		return
	}

	if err := fn(c.Request.Context(), uint(id), *req.Open, ac, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"open": *req.Open})
}

// UploadPoster handles POST /events/:id/poster
func (h *Handler) UploadPoster(c *gin.Context) {
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

	file, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
		return
	}

	stored, err := h.uploadSvc.Save(file, c.SaveUploadedFile)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := h.service.SetPoster(c.Request.Context(), uint(id), stored, ac); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"poster": stored, "url": h.uploadSvc.PublicURL(stored)})
}
