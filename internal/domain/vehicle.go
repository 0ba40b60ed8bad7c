package domain

// Vehicle Model
//
// The 6-char registration number is the primary key, not a surrogate id.
// Ownership is resolved at read time by matching a Person's RegNumber.
type Vehicle struct {
	RegNum string `gorm:"primaryKey;size:6" json:"regnum"` // Registration number, primary key
	Brand  string `gorm:"size:20;not null" json:"brand"`   // Vehicle brand
	Color  string `gorm:"size:20;not null" json:"color"`   // Vehicle color
}
