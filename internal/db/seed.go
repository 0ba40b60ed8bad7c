package db

import (
	"vehicle_registry/internal/domain" // Importing domain models
	"vehicle_registry/internal/store"  // Keyed record storage

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Seed populates demo data on first run. Each entity group is loaded only
// when its table is empty, so running it again is a no-op.
func Seed(s *store.Store) error {
	if err := seedUsers(s); err != nil {
		return err
	}
	// Vehicles before persons: the demo persons claim these codes
	if err := seedVehicles(s); err != nil {
		return err
	}
	if err := seedPersons(s); err != nil {
		return err
	}
	if err := seedPhones(s); err != nil {
		return err
	}
	if err := seedMessages(s); err != nil {
		return err
	}
	logrus.Info("Data initialization completed.")
	return nil
}

func seedUsers(s *store.Store) error {
	n, err := s.Users.Count()
	if err != nil || n > 0 {
		return err
	}
	seed := []struct {
		username, password, email, fullName, role string
	}{
		{"admin", "admin123", "admin@vehiclereg.com", "System Administrator", domain.RoleAdmin},
		{"user", "user123", "user@vehiclereg.com", "Test User", domain.RoleRegistered},
	}
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Username: u.username,
			Password: string(hash),
			Email:    u.email,
			FullName: u.fullName,
			Role:     u.role,
		}
		if err := s.Users.Create(user); err != nil {
			return err
		}
	}
	logrus.Info("Initial users created: admin/admin123, user/user123")
	return nil
}

func seedVehicles(s *store.Store) error {
	n, err := s.Vehicles.Count()
	if err != nil || n > 0 {
		return err
	}
	vehicles := []domain.Vehicle{
		{RegNum: "ABC123", Brand: "Ford", Color: "red"},
		{RegNum: "FGH456", Brand: "Skoda", Color: "blue"},
		{RegNum: "SDF345", Brand: "Ford", Color: "white"},
		{RegNum: "HJK678", Brand: "BMW", Color: "red"},
	}
	for i := range vehicles {
		if err := s.Vehicles.Create(&vehicles[i]); err != nil {
			return err
		}
	}
	logrus.Info("Initial vehicles data loaded")
	return nil
}

func seedPersons(s *store.Store) error {
	n, err := s.Persons.Count()
	if err != nil || n > 0 {
		return err
	}
	persons := []domain.Person{
		{Name: "John Smith", RegNumber: "ABC123", Height: 175},
		{Name: "Tom Grey", RegNumber: "FGH456", Height: 168},
		{Name: "Viola Grant", RegNumber: "SDF345", Height: 165},
		{Name: "Steve Roberts", RegNumber: "HJK678", Height: 160},
	}
	for i := range persons {
		if err := s.Persons.Create(&persons[i]); err != nil {
			return err
		}
	}
	logrus.Info("Initial persons data loaded")
	return nil
}

func seedPhones(s *store.Store) error {
	n, err := s.Phones.Count()
	if err != nil || n > 0 {
		return err
	}
	numbers := map[string][]string{
		"ABC123": {"345678"},
		"FGH456": {"456123", "234678"},
		"SDF345": {"345123", "123789", "345987"},
	}
	for code, nums := range numbers {
		owner, err := s.Persons.GetByRegNumber(code)
		if err != nil {
			continue // demo person missing, skip their phones
		}
		for _, num := range nums {
			if err := s.Phones.Create(&domain.Phone{PersonID: owner.ID, Number: num}); err != nil {
				return err
			}
		}
	}
	logrus.Info("Initial phones data loaded")
	return nil
}

func seedMessages(s *store.Store) error {
	n, err := s.Messages.Count()
	if err != nil || n > 0 {
		return err
	}
	msgs := []domain.ContactMessage{
		{
			Name:    "Alice Johnson",
			Email:   "alice@example.com",
			Subject: "Question about vehicle registration",
			Message: "Hello, I have a question about registering my new vehicle. Could you please help me with the process?",
		},
		{
			Name:    "Bob Wilson",
			Email:   "bob@example.com",
			Subject: "Update contact information",
			Message: "I need to update my contact information in your system. How can I do this?",
		},
		{
			Name:    "Carol Davis",
			Email:   "carol@example.com",
			Subject: "System feedback",
			Message: "Great system! Very user-friendly and efficient. Keep up the good work!",
		},
	}
	for i := range msgs {
		if err := s.Messages.Create(&msgs[i]); err != nil {
			return err
		}
	}
	logrus.Info("Sample contact messages loaded")
	return nil
}
