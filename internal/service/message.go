package service

import (
	"regexp"
	"strings"
	"vehicle_registry/internal/domain" // Domain models and error taxonomy
	"vehicle_registry/internal/store"  // Keyed record storage
)

var messageEmailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MessageService orchestrates ContactMessage creation and listing. Messages
// are immutable once created; there is no update or delete path.
type MessageService struct {
	store *store.Store
}

// NewMessageService builds a MessageService.
func NewMessageService(s *store.Store) *MessageService {
	return &MessageService{store: s}
}

// Create validates and inserts a contact message.
func (s *MessageService) Create(m *domain.ContactMessage) error {
	fields := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		fields["name"] = "is required"
	} else if len(m.Name) > 100 {
		fields["name"] = "must not exceed 100 characters"
	}
	if !messageEmailRe.MatchString(m.Email) {
		fields["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(m.Subject) == "" {
		fields["subject"] = "is required"
	} else if len(m.Subject) > 200 {
		fields["subject"] = "must not exceed 200 characters"
	}
	if strings.TrimSpace(m.Message) == "" {
		fields["message"] = "is required"
	} else if len(m.Message) > 1000 {
		fields["message"] = "must not exceed 1000 characters"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return err
	}
	return s.store.Messages.Create(m)
}

// List returns all messages, newest first.
func (s *MessageService) List() ([]domain.ContactMessage, error) {
	return s.store.Messages.ListBySentDesc()
}
