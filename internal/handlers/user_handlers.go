package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/vidshop/internal/apperr"
	"github.com/01moynul/vidshop/internal/logger"
	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/store"
)

// --- User Registration ---

// RegisterInput is separate from models.User so clients cannot set an ID.
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=buyer seller"`
}

// Register handles POST /v1/register.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = models.RoleBuyer
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	now := time.Now()
	user := &models.User{
		Role:         input.Role,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: password.Hash,
		FullName:     input.FullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := h.Store.CreateUser(c.Request.Context(), user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		h.respondError(c, apperr.Conflict("Email is already registered"))
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Same message for unknown email and wrong password.
	invalid := apperr.Unauthorized("Invalid email or password")

	user, err := h.Store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(c, invalid)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	ok, err := password.Matches(input.Password)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	if !ok {
		h.respondError(c, invalid)
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me handles GET /v1/profile/me.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.Store.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- Profile Update ---

// UpdateProfileInput only upgrades a buyer to seller; there is no way back.
type UpdateProfileInput struct {
	Role      string  `json:"role" binding:"omitempty,oneof=seller"`
	Username  *string `json:"username" binding:"omitempty,min=3,max=64"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

// UpdateProfile handles PATCH /v1/profile/me. The response carries a fresh
// token because the role claim may have changed.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if len(trimmed) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be at least 3 characters"})
			return
		}
		input.Username = &trimmed
	}

	ctx := c.Request.Context()
	user, err := h.Store.GetUserByID(ctx, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Username != nil {
		user.Username = input.Username
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	user.UpdatedAt = time.Now()

	err = h.Store.UpdateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicateUsername) {
		h.respondError(c, apperr.Conflict("Username is already taken"))
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	logger.For(h.Log, c).Info("profile updated", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user, "token": token})
}
