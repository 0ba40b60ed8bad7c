package domain

// Phone Model
//
// PersonID must reference an existing Person; the orchestrator checks this at
// write time rather than relying on a database constraint. Phones are
// cascade-deleted when their owning Person is deleted.
type Phone struct {
	ID       uint   `gorm:"primaryKey" json:"id"`           // Primary key
	PersonID uint   `gorm:"index;not null" json:"personid"` // Owning person id
	Number   string `gorm:"size:20;not null" json:"number"` // Phone number
}
