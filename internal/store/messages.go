package store

import (
	"vehicle_registry/internal/domain" // Domain models and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// MessageRepo is the keyed store for ContactMessage records. Messages are
// append-only; there is no update path.
type MessageRepo struct {
	db *gorm.DB
}

// Create inserts a new contact message.
func (r *MessageRepo) Create(m *domain.ContactMessage) error {
	return translate(r.db.Create(m).Error)
}

// Get fetches a message by id.
func (r *MessageRepo) Get(id uint) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// ListBySentDesc returns all messages, newest first.
func (r *MessageRepo) ListBySentDesc() ([]domain.ContactMessage, error) {
	var msgs []domain.ContactMessage
	if err := r.db.Order("sent_at desc").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Count returns the number of messages.
func (r *MessageRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.ContactMessage{}).Count(&n).Error
	return n, err
}
