package store

import (
	"errors"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// VehicleRepo is the keyed store for Vehicle records. Vehicles are keyed by
// their 6-char registration number, not a surrogate id.
type VehicleRepo struct {
	db *gorm.DB
}

// Create inserts a new vehicle; a key collision surfaces as
// domain.ErrDuplicateKey.
func (r *VehicleRepo) Create(v *domain.Vehicle) error {
	return translate(r.db.Create(v).Error)
}

// Update rewrites the mutable fields of an existing vehicle. The load and
// the write share a transaction so the row cannot vanish in between, and a
// missing row surfaces as domain.ErrNotFound instead of an insert.
func (r *VehicleRepo) Update(v *domain.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Vehicle
		if err := tx.Where("reg_num = ?", v.RegNum).First(&existing).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&existing).Updates(map[string]any{
			"brand": v.Brand,
			"color": v.Color,
		}).Error)
	})
}

// Get fetches a vehicle by registration number.
func (r *VehicleRepo) Get(regNum string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.Where("reg_num = ?", regNum).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// Exists reports whether a vehicle with the given registration number exists.
func (r *VehicleRepo) Exists(regNum string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Vehicle{}).Where("reg_num = ?", regNum).Count(&n).Error
	return n > 0, err
}

// DeleteUnowned deletes a vehicle only if no person claims its registration
// number, running the owner check and the delete in one transaction so a
// person created between check and delete cannot be orphaned of their
// vehicle. Returns OwnedEntityError naming the owner when the check fails.
func (r *VehicleRepo) DeleteUnowned(regNum string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owner domain.Person
		err := tx.Where("reg_number = ?", regNum).First(&owner).Error
		if err == nil {
			return &domain.OwnedEntityError{RegNum: regNum, OwnerName: owner.Name}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		res := tx.Delete(&domain.Vehicle{}, "reg_num = ?", regNum)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// List returns all vehicles.
func (r *VehicleRepo) List() ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	if err := r.db.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Count returns the number of vehicles.
func (r *VehicleRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Vehicle{}).Count(&n).Error
	return n, err
}

// CountByBrand groups vehicles by brand. Pure read, pushed down to the
// database as a GROUP BY.
func (r *VehicleRepo) CountByBrand() (map[string]int64, error) {
	return r.groupCount("brand")
}

// CountByColor groups vehicles by color.
func (r *VehicleRepo) CountByColor() (map[string]int64, error) {
	return r.groupCount("color")
}

func (r *VehicleRepo) groupCount(column string) (map[string]int64, error) {
	type row struct {
		Value string
		Total int64
	}
	var rows []row
	err := r.db.Model(&domain.Vehicle{}).
		Select(column + " as value, count(*) as total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Value] = rw.Total
	}
	return out, nil
}
