package ownership

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"vehicle_registry/internal/domain"
	"vehicle_registry/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestLinker(t *testing.T) (*Linker, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Person{}, &domain.Vehicle{}, &domain.Phone{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := store.New(db)
	return NewLinker(s), s
}

func TestResolveOwnerRoundTrip(t *testing.T) {
	linker, s := newTestLinker(t)
	p := &domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}
	if err := s.Persons.Create(p); err != nil {
		t.Fatalf("create person: %v", err)
	}
	if err := s.Vehicles.Create(&domain.Vehicle{RegNum: "ABC123", Brand: "Ford", Color: "red"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	// resolveOwner(resolveVehicle(p).code) == p
	v, err := linker.ResolveVehicle(p)
	if err != nil {
		t.Fatalf("resolve vehicle: %v", err)
	}
	if v == nil || v.RegNum != "ABC123" {
		t.Fatalf("expected vehicle ABC123, got %+v", v)
	}
	owner, err := linker.ResolveOwner(v.RegNum)
	if err != nil {
		t.Fatalf("resolve owner: %v", err)
	}
	if owner == nil || owner.ID != p.ID {
		t.Fatalf("round trip broken: got %+v", owner)
	}
}

func TestResolveUnclaimed(t *testing.T) {
	linker, s := newTestLinker(t)
	if err := s.Vehicles.Create(&domain.Vehicle{RegNum: "FGH456", Brand: "Skoda", Color: "blue"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	owner, err := linker.ResolveOwner("FGH456")
	if err != nil {
		t.Fatalf("resolve owner: %v", err)
	}
	if owner != nil {
		t.Fatalf("expected no owner, got %+v", owner)
	}

	p := &domain.Person{Name: "No Car", RegNumber: "QQQ111", Height: 180}
	if err := s.Persons.Create(p); err != nil {
		t.Fatalf("create person: %v", err)
	}
	v, err := linker.ResolveVehicle(p)
	if err != nil {
		t.Fatalf("resolve vehicle: %v", err)
	}
	if v != nil {
		t.Fatalf("expected no vehicle, got %+v", v)
	}
}

func TestCanDeleteVehicle(t *testing.T) {
	linker, s := newTestLinker(t)
	if err := s.Vehicles.Create(&domain.Vehicle{RegNum: "ABC123", Brand: "Ford", Color: "red"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	if err := linker.CanDeleteVehicle("ABC123"); err != nil {
		t.Fatalf("unclaimed vehicle should be deletable: %v", err)
	}

	if err := s.Persons.Create(&domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}); err != nil {
		t.Fatalf("create person: %v", err)
	}
	err := linker.CanDeleteVehicle("ABC123")
	var owned *domain.OwnedEntityError
	if !errors.As(err, &owned) {
		t.Fatalf("expected OwnedEntityError, got %v", err)
	}
	if owned.OwnerName != "John Smith" || owned.RegNum != "ABC123" {
		t.Fatalf("error should name the owner and code: %+v", owned)
	}
}

func TestCanChangePersonCodeAlwaysAllowed(t *testing.T) {
	linker, s := newTestLinker(t)
	if err := s.Vehicles.Create(&domain.Vehicle{RegNum: "HJK678", Brand: "BMW", Color: "red"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	// Re-linking is free: pointing a person at an existing vehicle's code
	// just moves ownership, no vehicle state is touched.
	if !linker.CanChangePersonCode(1, "HJK678") {
		t.Fatal("changing a person's code must always be allowed")
	}
}
