// Package ownership resolves the soft link between a Person and a Vehicle.
//
// The two entities share a 6-char registration code but no storage-level
// foreign key, so the link is recomputed on every read via the indexed
// lookups in the store. Caching the link would go stale silently because
// either side's code can change independently.
package ownership

import (
	"errors"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy
	"vehicle_registry/internal/store"  // Keyed record storage
)

// Linker resolves and polices the Person<->Vehicle correlation.
type Linker struct {
	store *store.Store
}

// NewLinker builds a Linker over the store.
func NewLinker(s *store.Store) *Linker {
	return &Linker{store: s}
}

// ResolveOwner returns the Person claiming a vehicle's registration number,
// or nil when the vehicle is unclaimed. Person.RegNumber is unique, so this
// is a unique-or-none indexed lookup.
func (l *Linker) ResolveOwner(regNum string) (*domain.Person, error) {
	p, err := l.store.Persons.GetByRegNumber(regNum)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ResolveVehicle returns the Vehicle whose registration number matches the
// person's code, or nil when the person has no vehicle.
func (l *Linker) ResolveVehicle(p *domain.Person) (*domain.Vehicle, error) {
	v, err := l.store.Vehicles.Get(p.RegNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CanDeleteVehicle returns an OwnedEntityError naming the owner when a
// person still claims the vehicle's registration number. Deletion is refused
// rather than cascaded: the relationship is by convention, not by reference,
// and cascading through it could remove a vehicle whose code is about to be
// claimed by an edit in flight.
func (l *Linker) CanDeleteVehicle(regNum string) error {
	owner, err := l.ResolveOwner(regNum)
	if err != nil {
		return err
	}
	if owner != nil {
		return &domain.OwnedEntityError{RegNum: regNum, OwnerName: owner.Name}
	}
	return nil
}

// CanChangePersonCode always allows the change. Editing a person's code only
// moves which vehicle, if any, they are linked to; no vehicle state is
// touched, and the person's own uniqueness check happens elsewhere.
func (l *Linker) CanChangePersonCode(personID uint, newCode string) bool {
	return true
}
