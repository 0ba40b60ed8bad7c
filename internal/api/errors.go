package api

import (
	"errors"
	"net/http" // HTTP status codes
	"strconv"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// writeError translates a taxonomy error into a status code and a JSON body.
// Validation errors carry the full field map so a form can be fixed in one
// round trip. Anything outside the taxonomy is a storage failure and renders
// as a 500 without leaking details.
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
		return
	}
	var oErr *domain.OwnedEntityError
	if errors.As(err, &oErr) {
		c.JSON(http.StatusConflict, gin.H{"error": oErr.Error(), "owner": oErr.OwnerName})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrDuplicateKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration number already exists"})
	case errors.Is(err, domain.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update conflict, please retry"})
	case errors.Is(err, domain.ErrAuthFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// paramID parses a numeric id path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(v), true
}
