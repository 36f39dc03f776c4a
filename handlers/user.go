package handlers

import (
	"net/http"

	"auditorium/models"
	"auditorium/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler covers first-run setup and the caller's own profile.
type UserHandler struct {
	users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ExistsHandler reports whether any account has been created yet.
func (h *UserHandler) ExistsHandler(c *gin.Context) {
	exists, err := h.users.Exists(c.Request.Context())
	if err != nil {
		respondError(c, err, "user exists check")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// RegisterAdminHandler creates the first admin. Refused once any user exists.
func (h *UserHandler) RegisterAdminHandler(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	u, err := h.users.RegisterFirstAdmin(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err, "admin registration")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully", "user": u})
}

// GetProfileHandler returns the caller's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	u, err := h.users.GetProfile(c.Request.Context(), caller.UserID)
	if err != nil {
		respondError(c, err, "profile lookup")
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler edits the caller's own profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), caller.UserID, upd)
	if err != nil {
		respondError(c, err, "profile update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}
