// Package identity owns User records, credential hashing and role
// assignment. It is mechanism, not policy: admin-only gating of SetRole is
// enforced by the route policy table, not here.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy
	"vehicle_registry/internal/store"  // Keyed record storage

	"golang.org/x/crypto/bcrypt" // Password hashing
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9]{3,50}$`)
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Registry manages user accounts and credentials.
type Registry struct {
	store *store.Store
}

// NewRegistry builds a Registry over the store.
func NewRegistry(s *store.Store) *Registry {
	return &Registry{store: s}
}

// Register creates a new user with role REGISTERED. The raw password is
// bcrypt-hashed and never stored. A taken username fails with
// domain.ErrDuplicateUsername.
func (r *Registry) Register(username, rawPassword, email, fullName string) (*domain.User, error) {
	fields := map[string]string{}
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernameRe.MatchString(username) {
		fields["username"] = "must be 3-50 alphanumeric characters"
	}
	if len(rawPassword) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if !emailRe.MatchString(email) {
		fields["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(fullName) == "" {
		fields["full_name"] = "is required"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique index on username is the real guard.
	taken, err := r.store.Users.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username: username,
		Password: string(hash),
		Email:    email,
		FullName: fullName,
		Role:     domain.RoleRegistered,
	}
	if err := r.store.Users.Create(user); err != nil {
		// Pre-check passed but the insert collided: a concurrent
		// registration won the race.
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// Verify checks a username/password pair and returns the user on success.
// Unknown usernames and wrong passwords both fail with domain.ErrAuthFailed
// so callers cannot probe which of the two was wrong. bcrypt's comparison is
// constant-time.
func (r *Registry) Verify(username, rawPassword string) (*domain.User, error) {
	user, err := r.store.Users.GetByUsername(strings.ToLower(strings.TrimSpace(username)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)); err != nil {
		return nil, domain.ErrAuthFailed
	}
	return user, nil
}

// SetRole assigns a role to an existing user.
func (r *Registry) SetRole(userID uint, role string) error {
	if !domain.ValidRole(role) {
		return domain.NewValidationError(map[string]string{"role": "must be ADMIN or REGISTERED"})
	}
	return r.store.Users.SetRole(userID, role)
}
