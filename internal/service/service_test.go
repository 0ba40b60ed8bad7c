package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"vehicle_registry/internal/domain"
	"vehicle_registry/internal/ownership"
	"vehicle_registry/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	store    *store.Store
	persons  *PersonService
	vehicles *VehicleService
	phones   *PhoneService
	messages *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&domain.User{}, &domain.Person{}, &domain.Vehicle{}, &domain.Phone{}, &domain.ContactMessage{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := store.New(db)
	linker := ownership.NewLinker(s)
	return &testEnv{
		store:    s,
		persons:  NewPersonService(s, linker),
		vehicles: NewVehicleService(s, linker),
		phones:   NewPhoneService(s),
		messages: NewMessageService(s),
	}
}

func TestPersonValidationReportsEveryField(t *testing.T) {
	env := newTestEnv(t)
	err := env.persons.Create(&domain.Person{Name: "", RegNumber: "AB", Height: 50})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "regnumber", "height"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("expected violation for %q, fields: %v", field, vErr.Fields)
		}
	}
}

func TestPersonDuplicateRegNumber(t *testing.T) {
	env := newTestEnv(t)
	if err := env.persons.Create(&domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := env.persons.Create(&domain.Person{Name: "Jane Doe", RegNumber: "ABC123", Height: 160})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestPersonUpdateExcludesSelfFromUniqueness(t *testing.T) {
	env := newTestEnv(t)
	p := &domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}
	if err := env.persons.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	other := &domain.Person{Name: "Tom Grey", RegNumber: "FGH456", Height: 168}
	if err := env.persons.Create(other); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Keeping your own code on update is not a collision
	if err := env.persons.Update(p.ID, &domain.Person{Name: "John S.", RegNumber: "ABC123", Height: 176}); err != nil {
		t.Fatalf("update keeping own code: %v", err)
	}
	// Taking someone else's code is
	err := env.persons.Update(p.ID, &domain.Person{Name: "John S.", RegNumber: "FGH456", Height: 176})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestPersonDeleteCascadesPhonesNotVehicle(t *testing.T) {
	env := newTestEnv(t)
	if err := env.vehicles.Create(&domain.Vehicle{RegNum: "ABC123", Brand: "Ford", Color: "red"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	p := &domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}
	if err := env.persons.Create(p); err != nil {
		t.Fatalf("create person: %v", err)
	}
	if err := env.phones.Create(&domain.Phone{PersonID: p.ID, Number: "345678"}); err != nil {
		t.Fatalf("create phone: %v", err)
	}

	if err := env.persons.Delete(p.ID); err != nil {
		t.Fatalf("delete person: %v", err)
	}

	phones, err := env.store.Phones.ListByPerson(p.ID)
	if err != nil {
		t.Fatalf("list phones: %v", err)
	}
	if len(phones) != 0 {
		t.Fatalf("phones must cascade, got %d left", len(phones))
	}
	// The correlated vehicle is untouched and still retrievable
	if _, err := env.vehicles.Get("ABC123"); err != nil {
		t.Fatalf("vehicle must survive person delete: %v", err)
	}
}

// The ABC123 scenario end to end: claimed vehicle refuses deletion naming
// the owner, then deletes fine once the person is gone.
func TestVehicleDeleteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	p := &domain.Person{Name: "John Smith", RegNumber: "ABC123", Height: 175}
	if err := env.persons.Create(p); err != nil {
		t.Fatalf("create person: %v", err)
	}
	if err := env.vehicles.Create(&domain.Vehicle{RegNum: "ABC123", Brand: "Ford", Color: "red"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	err := env.vehicles.Delete("ABC123")
	var owned *domain.OwnedEntityError
	if !errors.As(err, &owned) {
		t.Fatalf("expected OwnedEntityError, got %v", err)
	}
	if owned.OwnerName != "John Smith" {
		t.Fatalf("expected owner John Smith, got %q", owned.OwnerName)
	}

	if err := env.persons.Delete(p.ID); err != nil {
		t.Fatalf("delete person: %v", err)
	}
	if err := env.vehicles.Delete("ABC123"); err != nil {
		t.Fatalf("delete after owner gone: %v", err)
	}
}

func TestVehicleValidation(t *testing.T) {
	env := newTestEnv(t)
	err := env.vehicles.Create(&domain.Vehicle{RegNum: "TOOLONG1", Brand: "", Color: ""})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Fields) != 3 {
		t.Fatalf("expected 3 violated fields, got %v", vErr.Fields)
	}
}

func TestVehicleUpdateUnknownKey(t *testing.T) {
	env := newTestEnv(t)
	err := env.vehicles.Update("NOPE01", &domain.Vehicle{Brand: "Ford", Color: "red"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVehicleUpdateAfterDeleteStaysDeleted(t *testing.T) {
	env := newTestEnv(t)
	if err := env.vehicles.Create(&domain.Vehicle{RegNum: "FGH456", Brand: "Skoda", Color: "blue"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	if err := env.vehicles.Delete("FGH456"); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}

	// An update arriving after the delete must not re-insert the row
	err := env.vehicles.Update("FGH456", &domain.Vehicle{Brand: "Skoda", Color: "green"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := env.vehicles.GetWithOwner("FGH456"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("vehicle came back after update: %v", err)
	}
}

func TestPhoneRequiresExistingPerson(t *testing.T) {
	env := newTestEnv(t)
	err := env.phones.Create(&domain.Phone{PersonID: 42, Number: "123456"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["personid"]; !ok {
		t.Fatalf("expected personid violation, fields: %v", vErr.Fields)
	}
}

func TestMessageValidationBounds(t *testing.T) {
	env := newTestEnv(t)
	err := env.messages.Create(&domain.ContactMessage{
		Name:    "Alice",
		Email:   "not-an-email",
		Subject: strings.Repeat("s", 201),
		Message: "hello",
	})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["email"]; !ok {
		t.Errorf("expected email violation, fields: %v", vErr.Fields)
	}
	if _, ok := vErr.Fields["subject"]; !ok {
		t.Errorf("expected subject violation, fields: %v", vErr.Fields)
	}

	ok := &domain.ContactMessage{Name: "Alice", Email: "alice@example.com", Subject: "Hi", Message: "hello"}
	if err := env.messages.Create(ok); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}
}

// Two creates race for the same code: the loser passes the friendly
// pre-check but the unique index rejects the insert, surfacing as
// ErrConflict from the orchestrator's point of view.
func TestPersonCreateRaceLoserGetsConflict(t *testing.T) {
	env := newTestEnv(t)
	winner := &domain.Person{Name: "First", RegNumber: "XYZ000", Height: 170}
	loser := &domain.Person{Name: "Second", RegNumber: "XYZ000", Height: 171}

	// The loser's pre-check happens before the winner commits
	taken, err := env.store.Persons.ExistsByRegNumber(loser.RegNumber)
	if err != nil || taken {
		t.Fatalf("pre-check should pass: %v %v", taken, err)
	}
	if err := env.persons.Create(winner); err != nil {
		t.Fatalf("winner create: %v", err)
	}
	// Loser commits directly against the store, as it would after its
	// stale pre-check
	err = env.store.Persons.Create(loser)
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected the index to reject the loser, got %v", err)
	}
}
