// Package service holds the per-entity CRUD orchestrators. Each one runs the
// same sequence: validate (reporting every violated field), uniqueness
// pre-check, relationship policy, then the store call. The pre-checks exist
// for friendly error messages; the database's unique indexes are the real
// guard under concurrent writers.
package service

import (
	"errors"
	"strings"
	"vehicle_registry/internal/domain"    // Domain models and error taxonomy
	"vehicle_registry/internal/ownership" // Person<->Vehicle soft link
	"vehicle_registry/internal/store"     // Keyed record storage
)

// PersonService orchestrates Person CRUD.
type PersonService struct {
	store  *store.Store
	linker *ownership.Linker
}

// NewPersonService builds a PersonService.
func NewPersonService(s *store.Store, l *ownership.Linker) *PersonService {
	return &PersonService{store: s, linker: l}
}

func validatePerson(p *domain.Person) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "is required"
	} else if len(p.Name) > 50 {
		fields["name"] = "must not exceed 50 characters"
	}
	if len(p.RegNumber) != 6 {
		fields["regnumber"] = "must be exactly 6 characters"
	}
	if p.Height < 100 {
		fields["height"] = "must be at least 100 cm"
	}
	return domain.NewValidationError(fields)
}

// Create validates and inserts a person. A taken registration code fails
// with domain.ErrDuplicateKey; losing a race after the pre-check passed
// surfaces as domain.ErrConflict and is not retried here.
func (s *PersonService) Create(p *domain.Person) error {
	if err := validatePerson(p); err != nil {
		return err
	}
	taken, err := s.store.Persons.ExistsByRegNumber(p.RegNumber)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateKey
	}
	if err := s.store.Persons.Create(p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// Update validates and overwrites a person by id, re-checking registration
// code uniqueness against everyone but the person themselves. Changing the
// code is always allowed at the ownership level: it merely re-links the
// person to whatever vehicle carries the new code.
func (s *PersonService) Update(id uint, p *domain.Person) error {
	if err := validatePerson(p); err != nil {
		return err
	}
	existing, err := s.store.Persons.Get(id)
	if err != nil {
		return err
	}
	taken, err := s.store.Persons.ExistsByRegNumber(p.RegNumber, id)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateKey
	}
	if !s.linker.CanChangePersonCode(id, p.RegNumber) {
		return domain.ErrForbidden
	}
	p.ID = existing.ID
	if err := s.store.Persons.Update(p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// Delete removes a person and cascades to their phones in one transaction.
// The vehicle sharing the person's registration code, if any, is untouched:
// phones are truly owned, vehicles are only correlated.
func (s *PersonService) Delete(id uint) error {
	return s.store.Transaction(func(tx *store.Store) error {
		if err := tx.Phones.DeleteByPerson(id); err != nil {
			return err
		}
		return tx.Persons.Delete(id)
	})
}

// Get fetches a person by id.
func (s *PersonService) Get(id uint) (*domain.Person, error) {
	return s.store.Persons.Get(id)
}

// GetWithVehicle fetches a person plus the vehicle they claim, if any, and
// their phones. The vehicle link is recomputed here, never cached.
func (s *PersonService) GetWithVehicle(id uint) (*domain.Person, *domain.Vehicle, []domain.Phone, error) {
	p, err := s.store.Persons.Get(id)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := s.linker.ResolveVehicle(p)
	if err != nil {
		return nil, nil, nil, err
	}
	phones, err := s.store.Phones.ListByPerson(id)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, v, phones, nil
}

// List returns all persons.
func (s *PersonService) List() ([]domain.Person, error) {
	return s.store.Persons.List()
}
