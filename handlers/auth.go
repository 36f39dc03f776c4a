package handlers

import (
	"net/http"

	"auditorium/models"
	"auditorium/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler covers login, HOD administration and password recovery.
type AuthHandler struct {
	users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates a user and returns a signed access token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required", err)
		return
	}

	resp, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}
	getLogger(c).Info("user logged in", zap.String("role", resp.Role))
	c.JSON(http.StatusOK, resp)
}

// RegisterHODHandler creates an approved HOD account (admin only).
func (h *AuthHandler) RegisterHODHandler(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	u, err := h.users.RegisterHOD(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err, "HOD registration")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "HOD registered successfully", "user": u})
}

// UpdateHODHandler edits a HOD account (admin only).
func (h *AuthHandler) UpdateHODHandler(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	u, err := h.users.UpdateHOD(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err, "HOD update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "HOD updated successfully", "user": u})
}

// ListHODsHandler returns all approved HODs (admin only).
func (h *AuthHandler) ListHODsHandler(c *gin.Context) {
	hods, err := h.users.ListApprovedHODs(c.Request.Context())
	if err != nil {
		respondError(c, err, "HOD listing")
		return
	}
	if hods == nil {
		hods = []models.User{}
	}
	c.JSON(http.StatusOK, hods)
}

type forgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

// ForgotPasswordHandler starts password recovery for an admin or a HOD.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username is required", err)
		return
	}

	channel, err := h.users.ForgotPassword(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err, "forgot password")
		return
	}

	msg := "OTP sent to admin email"
	if channel == user.ResetViaAdmin {
		msg = "Your reset request has been sent to the admin"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "channel": channel})
}

type adminResetRequest struct {
	Username    string `json:"username" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AdminResetPasswordHandler completes an admin's OTP reset.
func (h *AuthHandler) AdminResetPasswordHandler(c *gin.Context) {
	var req adminResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username, OTP and new password are required", err)
		return
	}

	if err := h.users.AdminResetPassword(c.Request.Context(), req.Username, req.OTP, req.NewPassword); err != nil {
		respondError(c, err, "admin password reset")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

type hodResetRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetHODPasswordHandler sets a HOD's password and emails it (admin only).
func (h *AuthHandler) ResetHODPasswordHandler(c *gin.Context) {
	var req hodResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and new password are required", err)
		return
	}

	if err := h.users.ResetHODPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		respondError(c, err, "HOD password reset")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset and emailed to HOD"})
}
