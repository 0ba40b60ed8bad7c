package store

import (
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// UserRepo is the keyed store for User records.
type UserRepo struct {
	db *gorm.DB
}

// Create inserts a new user. A username collision surfaces as
// domain.ErrDuplicateKey via the unique index.
func (r *UserRepo) Create(u *domain.User) error {
	return translate(r.db.Create(u).Error)
}

// SetRole rewrites a user's role in place; an unknown id surfaces as
// domain.ErrNotFound instead of an insert.
func (r *UserRepo) SetRole(id uint, role string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, id).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&u).Update("role", role).Error)
	})
}

// Get fetches a user by id.
func (r *UserRepo) Get(id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// ExistsByUsername reports whether a username is taken.
func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// Delete removes a user by id.
func (r *UserRepo) Delete(id uint) error {
	res := r.db.Delete(&domain.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all users.
func (r *UserRepo) List() ([]domain.User, error) {
	var users []domain.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPage returns one page of users plus the total count.
func (r *UserRepo) ListPage(offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := r.db.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count returns the number of users.
func (r *UserRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Count(&n).Error
	return n, err
}
