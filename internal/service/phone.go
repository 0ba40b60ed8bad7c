package service

import (
	"strings"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy
	"vehicle_registry/internal/store"  // Keyed record storage
)

// PhoneService orchestrates Phone CRUD. Phones only exist in the context of
// an existing person; the reference is checked here at write time, not
// enforced by the database.
type PhoneService struct {
	store *store.Store
}

// NewPhoneService builds a PhoneService.
func NewPhoneService(s *store.Store) *PhoneService {
	return &PhoneService{store: s}
}

func (s *PhoneService) validate(p *domain.Phone) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Number) == "" {
		fields["number"] = "is required"
	} else if len(p.Number) > 20 {
		fields["number"] = "must not exceed 20 characters"
	}
	if p.PersonID == 0 {
		fields["personid"] = "is required"
	} else {
		ok, err := s.store.Persons.Exists(p.PersonID)
		if err != nil {
			return err
		}
		if !ok {
			fields["personid"] = "must reference an existing person"
		}
	}
	return domain.NewValidationError(fields)
}

// Create validates and inserts a phone.
func (s *PhoneService) Create(p *domain.Phone) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.store.Phones.Create(p)
}

// Update validates and overwrites a phone by id.
func (s *PhoneService) Update(id uint, p *domain.Phone) error {
	if err := s.validate(p); err != nil {
		return err
	}
	p.ID = id
	return s.store.Phones.Update(p)
}

// Delete removes a phone by id.
func (s *PhoneService) Delete(id uint) error {
	return s.store.Phones.Delete(id)
}

// Get fetches a phone by id.
func (s *PhoneService) Get(id uint) (*domain.Phone, error) {
	return s.store.Phones.Get(id)
}

// List returns all phones.
func (s *PhoneService) List() ([]domain.Phone, error) {
	return s.store.Phones.List()
}

// ListByPerson returns the phones owned by a person.
func (s *PhoneService) ListByPerson(personID uint) ([]domain.Phone, error) {
	return s.store.Phones.ListByPerson(personID)
}
