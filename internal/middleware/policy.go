package middleware

import (
	"net/http"                         // HTTP status codes
	"vehicle_registry/internal/domain" // Role constants

	"github.com/gin-gonic/gin" // Gin web framework
)

// Route groups gated by the policy table. Public pages, registration and the
// contact form take no gate at all and do not appear here.
const (
	GroupMessages = "messages" // reading submitted contact messages
	GroupAdmin    = "admin"    // user management, exports, dashboard
	GroupAPI      = "api"      // the JSON API surface
)

// RoutePolicy maps a route group to the roles allowed to enter it. The table
// is evaluated once per request, before any handler logic runs, and is the
// single place the role model lives.
var RoutePolicy = map[string][]string{
	GroupMessages: {domain.RoleRegistered, domain.RoleAdmin},
	GroupAdmin:    {domain.RoleAdmin},
	GroupAPI:      {domain.RoleRegistered, domain.RoleAdmin},
}

// RequireGroup gates a route group against RoutePolicy: anonymous callers
// get 401, authenticated callers whose role is not in the group's set get
// 403. Panics at wiring time on an unknown group name.
func RequireGroup(group string) gin.HandlerFunc {
	roles, ok := RoutePolicy[group]
	if !ok {
		panic("unknown route group: " + group)
	}
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !allowed[p.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}
