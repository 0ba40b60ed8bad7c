package store

import (
	"errors"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// Store bundles one repository per entity kind over a single gorm handle.
// Repositories are stateless; shared mutable state lives in the database.
type Store struct {
	db       *gorm.DB
	Users    *UserRepo
	Persons  *PersonRepo
	Vehicles *VehicleRepo
	Phones   *PhoneRepo
	Messages *MessageRepo
}

// New builds a Store over db. The gorm handle must be opened with
// TranslateError enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    &UserRepo{db: db},
		Persons:  &PersonRepo{db: db},
		Vehicles: &VehicleRepo{db: db},
		Phones:   &PhoneRepo{db: db},
		Messages: &MessageRepo{db: db},
	}
}

// Transaction runs fn against a transaction-scoped Store. Used where a single
// operation must touch more than one entity kind atomically (person delete
// cascading to phones).
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// translate maps gorm errors onto the shared taxonomy. Unknown errors pass
// through untouched and are treated as storage failures upstream.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateKey
	}
	return err
}
