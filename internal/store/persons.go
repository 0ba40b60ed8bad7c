package store

import (
	"errors"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// PersonRepo is the keyed store for Person records. The unique index on
// reg_number is both the uniqueness guard and the ownership lookup index.
type PersonRepo struct {
	db *gorm.DB
}

// Create inserts a new person. A reg_number collision surfaces as
// domain.ErrDuplicateKey via the unique index, so two racing creates with the
// same code cannot both succeed.
func (r *PersonRepo) Create(p *domain.Person) error {
	return translate(r.db.Create(p).Error)
}

// Update rewrites the mutable fields of an existing person. Load and write
// share a transaction; an unknown id surfaces as domain.ErrNotFound instead
// of an insert.
func (r *PersonRepo) Update(p *domain.Person) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Person
		if err := tx.First(&existing, p.ID).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&existing).Updates(map[string]any{
			"name":       p.Name,
			"reg_number": p.RegNumber,
			"height":     p.Height,
		}).Error)
	})
}

// Get fetches a person by id.
func (r *PersonRepo) Get(id uint) (*domain.Person, error) {
	var p domain.Person
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// GetByRegNumber fetches the person claiming a registration code. At most one
// can exist because of the unique index, so this is a unique-or-none lookup.
func (r *PersonRepo) GetByRegNumber(regNumber string) (*domain.Person, error) {
	var p domain.Person
	if err := r.db.Where("reg_number = ?", regNumber).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ExistsByRegNumber reports whether a registration code is taken. Records
// whose id is in exclude are ignored, which lets updates re-check uniqueness
// without tripping on themselves.
func (r *PersonRepo) ExistsByRegNumber(regNumber string, exclude ...uint) (bool, error) {
	q := r.db.Model(&domain.Person{}).Where("reg_number = ?", regNumber)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a person by id.
func (r *PersonRepo) Delete(id uint) error {
	res := r.db.Delete(&domain.Person{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all persons.
func (r *PersonRepo) List() ([]domain.Person, error) {
	var persons []domain.Person
	if err := r.db.Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// Count returns the number of persons.
func (r *PersonRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Person{}).Count(&n).Error
	return n, err
}

// Exists reports whether a person with the given id exists.
func (r *PersonRepo) Exists(id uint) (bool, error) {
	_, err := r.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
