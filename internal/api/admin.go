package api

import (
	"context"                           // Context for Redis operations
	"encoding/csv"                      // CSV export
	"fmt"                               // Formatting CSV rows
	"net/http"                          // HTTP status codes
	"strconv"                           // String conversion
	"strings"                           // CSV buffer assembly
	"time"                              // Time durations
	"vehicle_registry/internal/service" // CRUD orchestrators
	"vehicle_registry/internal/store"   // Keyed record storage
	"vehicle_registry/internal/utils"   // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID        uint      `json:"id"`         // User ID
	Username  string    `json:"username"`   // Username
	Email     string    `json:"email"`      // Email address
	FullName  string    `json:"full_name"`  // Full name
	Role      string    `json:"role"`       // User role
	CreatedAt time.Time `json:"created_at"` // Registration timestamp
}

// AdminDashboardHandler returns the entity counts shown on the admin
// dashboard
func AdminDashboardHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err1 := s.Users.Count()
		persons, err2 := s.Persons.Count()
		vehicles, err3 := s.Vehicles.Count()
		messages, err4 := s.Messages.Count()
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				writeError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"total_users":    users,
			"total_persons":  persons,
			"total_vehicles": vehicles,
			"total_messages": messages,
		})
	}
}

// ListUsersHandler returns all users, paginated and cached in Redis
func ListUsersHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Users      []UserAdminResponse `json:"users"`
			Page       int                 `json:"page"`
			PageSize   int                 `json:"page_size"`
			Total      int64               `json:"total"`
			TotalPages int                 `json:"total_pages"`
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true, // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		offset := (page - 1) * pageSize
		users, total, err := svc.ListPage(offset, pageSize)
		if err != nil {
			writeError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:        u.ID,
				Username:  u.Username,
				Email:     u.Email,
				FullName:  u.FullName,
				Role:      u.Role,
				CreatedAt: u.CreatedAt,
			}
		}
		respData := gin.H{
			"users":       resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// invalidateUserListCache drops the paginated admin user listing from Redis
// after a write (simple version: delete first 5 pages at the default size)
func invalidateUserListCache(ctx context.Context, rdb *redis.Client) {
	for i := 1; i <= 5; i++ {
		// Delete cache entries
		_ = utils.DeleteCache(ctx, rdb, "admin:users:page="+strconv.Itoa(i)+":size=20")
	}
}

// Request struct for assigning a role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"` // ADMIN or REGISTERED
}

// SetUserRoleHandler assigns a role to a user. Reachable only through the
// admin route group.
func SetUserRoleHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req SetRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := svc.SetRole(id, req.Role); err != nil {
			writeError(c, err)
			return
		}
		// Invalidate the cached user listing so it never serves the old role
		invalidateUserListCache(context.Background(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
	}
}

// DeleteUserHandler removes a user by id
func DeleteUserHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		user, err := svc.Get(id)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := svc.Delete(id); err != nil {
			writeError(c, err)
			return
		}
		// Invalidate the cached user listing so the deleted user drops out
		invalidateUserListCache(context.Background(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "User '" + user.Username + "' deleted successfully"})
	}
}

// ClearCacheHandler wipes every cached response: the paginated user listing
// and the vehicle statistics
func ClearCacheHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		invalidateUserListCache(ctx, rdb)
		_ = utils.DeleteCache(ctx, rdb, "stats:vehicles:brand")
		_ = utils.DeleteCache(ctx, rdb, "stats:vehicles:color")
		c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully!"})
	}
}

// ExportUsersHandler streams all users as a CSV attachment. Pure formatting
// over store output.
func ExportUsersHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List()
		if err != nil {
			writeError(c, err)
			return
		}
		var buf strings.Builder
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"ID", "Username", "Email", "Full Name", "Role", "Created At"})
		for _, u := range users {
			_ = w.Write([]string{
				fmt.Sprintf("%d", u.ID),
				u.Username,
				u.Email,
				u.FullName,
				u.Role,
				u.CreatedAt.Format(time.RFC3339),
			})
		}
		w.Flush()
		c.Header("Content-Disposition", `attachment; filename="users_export.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(buf.String()))
	}
}
