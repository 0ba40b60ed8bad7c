package service

import (
	"errors"
	"strings"
	"vehicle_registry/internal/domain"    // Domain models and error taxonomy
	"vehicle_registry/internal/ownership" // Person<->Vehicle soft link
	"vehicle_registry/internal/store"     // Keyed record storage
)

// VehicleService orchestrates Vehicle CRUD.
type VehicleService struct {
	store  *store.Store
	linker *ownership.Linker
}

// NewVehicleService builds a VehicleService.
func NewVehicleService(s *store.Store, l *ownership.Linker) *VehicleService {
	return &VehicleService{store: s, linker: l}
}

func validateVehicle(v *domain.Vehicle) error {
	fields := map[string]string{}
	if len(v.RegNum) != 6 {
		fields["regnum"] = "must be exactly 6 characters"
	}
	if strings.TrimSpace(v.Brand) == "" {
		fields["brand"] = "is required"
	} else if len(v.Brand) > 20 {
		fields["brand"] = "must not exceed 20 characters"
	}
	if strings.TrimSpace(v.Color) == "" {
		fields["color"] = "is required"
	} else if len(v.Color) > 20 {
		fields["color"] = "must not exceed 20 characters"
	}
	return domain.NewValidationError(fields)
}

// Create validates and inserts a vehicle. The registration number is the
// primary key, so the duplicate check is an existence check on the key.
func (s *VehicleService) Create(v *domain.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	taken, err := s.store.Vehicles.Exists(v.RegNum)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateKey
	}
	if err := s.store.Vehicles.Create(v); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// Update validates and overwrites a vehicle. The key comes from the route,
// not the payload, so a vehicle can never change registration number via
// update. The store rejects unknown keys with ErrNotFound rather than
// inserting, so a concurrently deleted vehicle stays deleted.
func (s *VehicleService) Update(regNum string, v *domain.Vehicle) error {
	v.RegNum = regNum
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.store.Vehicles.Update(v)
}

// Delete removes a vehicle unless a person claims its registration number,
// in which case it fails with OwnedEntityError naming the owner. The
// ownership check and the delete run in one store transaction, closing the
// window where a person could claim the code between check and delete.
func (s *VehicleService) Delete(regNum string) error {
	return s.store.Vehicles.DeleteUnowned(regNum)
}

// Get fetches a vehicle by registration number.
func (s *VehicleService) Get(regNum string) (*domain.Vehicle, error) {
	return s.store.Vehicles.Get(regNum)
}

// GetWithOwner fetches a vehicle plus the person claiming it, if any.
func (s *VehicleService) GetWithOwner(regNum string) (*domain.Vehicle, *domain.Person, error) {
	v, err := s.store.Vehicles.Get(regNum)
	if err != nil {
		return nil, nil, err
	}
	owner, err := s.linker.ResolveOwner(regNum)
	if err != nil {
		return nil, nil, err
	}
	return v, owner, nil
}

// List returns all vehicles.
func (s *VehicleService) List() ([]domain.Vehicle, error) {
	return s.store.Vehicles.List()
}

// ListWithOwners returns all vehicles plus a regnum -> owner map for the
// claimed ones.
func (s *VehicleService) ListWithOwners() ([]domain.Vehicle, map[string]domain.Person, error) {
	vehicles, err := s.store.Vehicles.List()
	if err != nil {
		return nil, nil, err
	}
	owners := make(map[string]domain.Person)
	for _, v := range vehicles {
		owner, err := s.linker.ResolveOwner(v.RegNum)
		if err != nil {
			return nil, nil, err
		}
		if owner != nil {
			owners[v.RegNum] = *owner
		}
	}
	return vehicles, owners, nil
}

// StatsByBrand returns vehicle counts grouped by brand.
func (s *VehicleService) StatsByBrand() (map[string]int64, error) {
	return s.store.Vehicles.CountByBrand()
}

// StatsByColor returns vehicle counts grouped by color.
func (s *VehicleService) StatsByColor() (map[string]int64, error) {
	return s.store.Vehicles.CountByColor()
}
