package store

import (
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// PhoneRepo is the keyed store for Phone records.
type PhoneRepo struct {
	db *gorm.DB
}

// Create inserts a new phone.
func (r *PhoneRepo) Create(p *domain.Phone) error {
	return translate(r.db.Create(p).Error)
}

// Update rewrites the mutable fields of an existing phone; an unknown id
// surfaces as domain.ErrNotFound instead of an insert.
func (r *PhoneRepo) Update(p *domain.Phone) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Phone
		if err := tx.First(&existing, p.ID).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&existing).Updates(map[string]any{
			"person_id": p.PersonID,
			"number":    p.Number,
		}).Error)
	})
}

// Get fetches a phone by id.
func (r *PhoneRepo) Get(id uint) (*domain.Phone, error) {
	var p domain.Phone
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Delete removes a phone by id.
func (r *PhoneRepo) Delete(id uint) error {
	res := r.db.Delete(&domain.Phone{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all phones.
func (r *PhoneRepo) List() ([]domain.Phone, error) {
	var phones []domain.Phone
	if err := r.db.Find(&phones).Error; err != nil {
		return nil, err
	}
	return phones, nil
}

// ListByPerson returns the phones owned by a person.
func (r *PhoneRepo) ListByPerson(personID uint) ([]domain.Phone, error) {
	var phones []domain.Phone
	if err := r.db.Where("person_id = ?", personID).Find(&phones).Error; err != nil {
		return nil, err
	}
	return phones, nil
}

// DeleteByPerson removes every phone owned by a person. Used by the cascade
// on person deletion; deleting zero rows is not an error.
func (r *PhoneRepo) DeleteByPerson(personID uint) error {
	return translate(r.db.Where("person_id = ?", personID).Delete(&domain.Phone{}).Error)
}

// Count returns the number of phones.
func (r *PhoneRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Phone{}).Count(&n).Error
	return n, err
}
