package api

import (
	"net/http"                             // HTTP status codes
	"vehicle_registry/internal/identity"   // Identity registry
	"vehicle_registry/internal/middleware" // Session helpers
	"vehicle_registry/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	FullName string `json:"full_name" binding:"required"`
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token for API clients
	Role  string `json:"role"`  // Role of the authenticated user
}

// RegisterHandler creates a new account with role REGISTERED
func RegisterHandler(reg *identity.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := reg.Register(req.Username, req.Password, req.Email, req.FullName)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
	}
}

// LoginHandler authenticates a user, starts a browser session and returns a
// JWT token for API clients. Both credentials carry the same principal.
func LoginHandler(reg *identity.Registry, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := reg.Verify(req.Username, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := middleware.SetSessionUser(c, user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: user.Role})
	}
}

// LogoutHandler ends the browser session
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
