package models

import "time"

// Post is a program, scholarship, or research position published by an
// institution. Applications always go through a post; the post's
// institution is what grants an institution visibility into applicant
// documents.
type Post struct {
	BaseModel
	InstitutionID string     `gorm:"not null;index"`
	Type          PostType   `gorm:"type:varchar(20);not null"`
	Title         string     `gorm:"not null"`
	Description   string     `gorm:"type:text"`
	Deadline      *time.Time `gorm:"index"`
	Status        PostStatus `gorm:"type:varchar(20);default:'draft'"`

	Institution *InstitutionProfile `gorm:"foreignKey:InstitutionID"`
}
