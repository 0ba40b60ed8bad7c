package domain

import "time"

// ContactMessage Model
//
// Messages are immutable once created; the system only ever inserts and
// lists them.
type ContactMessage struct {
	ID      uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Name    string    `gorm:"size:100;not null" json:"name"`   // Sender name
	Email   string    `gorm:"size:100;not null" json:"email"`  // Sender email
	Subject string    `gorm:"size:200;not null" json:"subject"` // Message subject
	Message string    `gorm:"size:1000;not null" json:"message"` // Message body
	SentAt  time.Time `gorm:"autoCreateTime" json:"sent_at"`   // Timestamp of submission
}
