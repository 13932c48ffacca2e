package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required" example:"Aisyah Rahman"`
	Email    string `json:"email" binding:"required,email" example:"aisyah@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Role     string `json:"role" binding:"required" example:"participant"`
	Phone    string `json:"phone" example:"+60123456789"`
	// ✅ Organizer specific fields
	Organization string `json:"organization" example:"Computer Science Society"`
	Description  string `json:"description" example:"Student club running tech talks and hackathons."`
	// ✅ Participant specific fields
	Institution  string `json:"institution" example:"Faculty of Computing"`
	MatricNumber string `json:"matricNumber" example:"A20EC0012"`
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a participant or an organizer. Organizers await admin verification.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// ❌ Block admin self-registration
	if strings.ToLower(req.Role) == "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin registration is not allowed"})
		return
	}

	// ✅ Validate organizer details early
	if strings.ToLower(req.Role) == "organizer" && req.Organization == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization name is required for organizer registration"})
		return
	}

	input := RegisterInput(req)

	if err := h.service.Register(input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if strings.ToLower(req.Role) == "organizer" {
		c.JSON(http.StatusCreated, gin.H{"message": "Organizer registered. Awaiting verification."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email" example:"aisyah@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// Login handles POST /auth/login
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginReq true "Credentials"
// @Success 200 {object} gin.H
// @Failure 401 {object} gin.H
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokens, user, err := h.service.Login(LoginInput(req))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role.RoleName,
		},
	})
}

// ===============================
// Refresh Token
// ===============================

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"your_refresh_token_here"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// ===============================
// Forgot Password
// ===============================

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required,email" example:"aisyah@example.com"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide a valid email address",
		})
		return
	}

	err := h.service.RequestPasswordReset(req.Email)
	if err != nil {
		if strings.Contains(err.Error(), "user not found") {
			// ⚠️ Security: Don't reveal if user exists or not
			c.JSON(http.StatusOK, gin.H{
				"message": "If an account exists with this email, a password reset link has been sent",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to send email",
			"message": "Unable to send password reset email. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists with this email, a password reset link has been sent",
	})
}

// ===============================
// Reset Password
// ===============================

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required" example:"reset_token_abc123"`
	NewPassword string `json:"newPassword" binding:"required,min=6" example:"newsecret123"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide both token and new password",
		})
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword); err != nil {
		if strings.Contains(err.Error(), "token") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid token",
				"message": "This password reset link is invalid or has expired. Please request a new one.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"message": "Unable to reset password. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}

// ===============================
// Logout
// ===============================

func (h *Handler) Logout(c *gin.Context) {
	_ = h.service.Logout() // stateless
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ===============================
// Public Roles
// ===============================

// GetPublicRoles handles GET /auth/public-roles - roles selectable at signup
func (h *Handler) GetPublicRoles(c *gin.Context) {
	roles, err := h.service.GetPublicRoles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}

// ===============================
// Profile & device token
// ===============================

type fcmTokenReq struct {
	Token string `json:"token" binding:"required"`
}

// SaveFCMToken handles POST /auth/fcm-token
func (h *Handler) SaveFCMToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req fcmTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SaveFCMToken(userID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token saved"})
}

// Me handles GET /auth/me - returns the caller's profile
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	payload := gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
		"phone":    user.Phone,
		"role":     user.Role.RoleName,
	}

	switch user.Role.RoleName {
	case "organizer":
		if profile, err := h.service.GetOrganizerProfile(user.ID); err == nil {
			payload["organizerProfile"] = profile
		}
	case "participant":
		if profile, err := h.service.GetParticipantProfile(user.ID); err == nil {
			payload["participantProfile"] = profile
		}
	}

	c.JSON(http.StatusOK, payload)
}
