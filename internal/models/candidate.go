package models

type Candidate struct {
	BaseModel
	Name        string `gorm:"not null;index"`
	Email       string `gorm:"not null"`
	CreatedByID string `gorm:"not null;index"`

	// Relations
	CreatedBy *User  `gorm:"foreignKey:CreatedByID"`
	Notes     []Note `gorm:"foreignKey:CandidateID"`
}
