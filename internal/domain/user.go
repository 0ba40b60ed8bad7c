package domain

import "time"

// Roles assignable to a User
const (
	RoleAdmin      = "ADMIN"      // Full access including user management
	RoleRegistered = "REGISTERED" // Default role for new registrations
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"` // Unique username
	Password  string    `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	Email     string    `gorm:"size:100;not null" json:"email"`               // Email address
	FullName  string    `gorm:"size:100;not null" json:"full_name"`           // Full name
	Role      string    `gorm:"size:20;default:REGISTERED" json:"role"`       // Role: ADMIN or REGISTERED
	CreatedAt time.Time `json:"created_at"`                                   // Timestamp of registration
}

// ValidRole reports whether s is one of the assignable roles
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleRegistered
}
