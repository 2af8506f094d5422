package handlers

import (
	"errors"
	"net/http"

	"food-rescue-api/middleware"
	"food-rescue-api/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register creates a new user account and signs them in
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.Users.Register(c.Request.Context(), repository.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.role(),
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.UserID, user.Email)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.logger().Info("user registered", zap.Uint("user_id", user.UserID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.Users.Verify(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.UserID, user.Email)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.FindByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
