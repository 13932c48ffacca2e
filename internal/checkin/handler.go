package checkin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type scanReq struct {
	Code string `json:"code" binding:"required"`
	// UserID names the participant being checked in (organizer desks only);
	// participants scanning for themselves leave it empty.
	UserID uint `json:"user_id"`
}

// Scan handles POST /checkin/scan
// @Summary Scan a QR code to check in
// @Description Resolve a scanned code to its event, find the caller's registration, and mark attendance. Duplicate scans succeed and report already_checked_in.
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param request body scanReq true "Scanned code"
// @Success 200 {object} Result
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Failure 422 {object} gin.H
// @Failure 502 {object} gin.H
// @Router /api/v1/checkin/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	// Naming another participant is an organizer/admin operation
	if req.UserID != 0 && req.UserID != ac.UserID && ac.IsParticipant() {
		c.JSON(http.StatusForbidden, gin.H{"error": "participants may only check in themselves"})
		return
	}

	var result *Result
	var err error
	if req.UserID != 0 && req.UserID != ac.UserID {
		result, err = h.service.ScanFor(c.Request.Context(), req.Code, req.UserID, ac, c.ClientIP())
	} else {
		result, err = h.service.Scan(c.Request.Context(), req.Code, ac, c.ClientIP())
	}

	if err != nil {
		switch {
		case errors.Is(err, qrcode.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown QR code"})
		case errors.Is(err, qrcode.ErrUnlinked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "QR code is not linked to an event"})
		case errors.Is(err, registration.ErrNotRegistered):
			c.JSON(http.StatusNotFound, gin.H{"error": "No registration found for this event"})
		case errors.Is(err, registration.ErrAttendanceMissing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Attendance record missing; contact the organizer"})
		case errors.Is(err, ErrScanInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Another scan is already in progress"})
		default:
			// Anything left is an infrastructure failure downstream
			// of the scan itself.
			c.JSON(http.StatusBadGateway, gin.H{"error": "Scan temporarily unavailable, try again"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
