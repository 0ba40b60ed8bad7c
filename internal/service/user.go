package service

import (
	"vehicle_registry/internal/domain"   // Domain models and error taxonomy
	"vehicle_registry/internal/identity" // Credential mechanism
	"vehicle_registry/internal/store"    // Keyed record storage
)

// UserService orchestrates the admin-facing user operations. Registration
// and credential checks live in the identity registry; this wraps the rest.
type UserService struct {
	store    *store.Store
	registry *identity.Registry
}

// NewUserService builds a UserService.
func NewUserService(s *store.Store, r *identity.Registry) *UserService {
	return &UserService{store: s, registry: r}
}

// ListPage returns one page of users plus the total count.
func (s *UserService) ListPage(offset, limit int) ([]domain.User, int64, error) {
	return s.store.Users.ListPage(offset, limit)
}

// List returns all users.
func (s *UserService) List() ([]domain.User, error) {
	return s.store.Users.List()
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*domain.User, error) {
	return s.store.Users.Get(id)
}

// Delete removes a user by id.
func (s *UserService) Delete(id uint) error {
	return s.store.Users.Delete(id)
}

// SetRole assigns a role to a user via the identity registry.
func (s *UserService) SetRole(id uint, role string) error {
	return s.registry.SetRole(id, role)
}
