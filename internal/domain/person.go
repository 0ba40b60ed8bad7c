package domain

// Person Model
//
// A Person is linked to a Vehicle only by RegNumber matching the Vehicle's
// RegNum. There is deliberately no foreign key between the two tables: a
// Vehicle may exist before anyone claims it, and deleting a Person must not
// touch the Vehicle.
type Person struct {
	ID        uint   `gorm:"primaryKey" json:"id"`                         // Primary key
	Name      string `gorm:"size:50;not null" json:"name"`                 // Person name
	RegNumber string `gorm:"uniqueIndex;size:6;not null" json:"regnumber"` // 6-char registration code, unique
	Height    int    `gorm:"not null" json:"height"`                       // Height in cm, at least 100
}
