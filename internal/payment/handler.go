package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// StartPayment handles POST /registrations/:id/payments
// @Summary Start payment for a registration
// @Tags Payment
// @Produce json
// @Param id path uint true "Registration ID"
// @Success 200 {object} CreatePaymentResponse
// @Failure 404 {object} gin.H
// @Router /api/v1/registrations/{id}/payment [post]
func (h *Handler) StartPayment(c *gin.Context) {
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

	resp, err := h.service.StartPayment(c.Request.Context(), uint(id), ac, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrNotRegistered):
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		case errors.Is(err, ErrNothingToPay):
			c.JSON(http.StatusConflict, gin.H{"error": "This registration has nothing to pay"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPayment handles POST /payments/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.VerifyPayment(c.Request.Context(), req, ac, c.ClientIP()); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified"})
}
