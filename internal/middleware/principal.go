package middleware

import (
	"errors"
	"net/http" // HTTP status codes
	"strings"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy
	"vehicle_registry/internal/store"  // Keyed record storage
	"vehicle_registry/internal/utils"  // JWT utility functions

	"github.com/gin-contrib/sessions" // Cookie session store
	"github.com/gin-gonic/gin"        // Gin web framework
)

// Context and session keys for the authenticated principal
const (
	PrincipalKey  = "principal"
	sessionUserID = "userID"
)

// Principal is the authenticated caller as seen by the policy gate.
type Principal struct {
	UserID   uint
	Username string
	Role     string
}

// SetSessionUser records the logged-in user id in the browser session.
func SetSessionUser(c *gin.Context, userID uint) error {
	s := sessions.Default(c)
	s.Set(sessionUserID, userID)
	return s.Save()
}

// ClearSession logs the browser session out.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// ResolvePrincipal identifies the caller from the browser session cookie or
// a Bearer JWT and stores a Principal in the gin context. The user record is
// re-read from the store on every request so role changes take effect
// immediately; a request with no usable credentials proceeds as anonymous.
func ResolvePrincipal(s *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint

		// Browser session first
		if v := sessions.Default(c).Get(sessionUserID); v != nil {
			if id, ok := v.(uint); ok {
				userID = id
			}
		}

		// Then Bearer token for API clients
		if userID == 0 {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				claims, err := utils.ParseJWT(strings.TrimPrefix(auth, "Bearer "), jwtSecret)
				if err == nil {
					userID = claims.UserID
				}
			}
		}

		if userID != 0 {
			user, err := s.Users.Get(userID)
			if err == nil {
				c.Set(PrincipalKey, &Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
			} else if !errors.Is(err, domain.ErrNotFound) {
				// Deleted users fall through to anonymous; storage
				// failures should not.
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
				return
			}
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, or nil for an
// anonymous request.
func CurrentPrincipal(c *gin.Context) *Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}
