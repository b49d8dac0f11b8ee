package models

// Application links an applicant to a post. It is the transitive bridge
// the institution behind the post uses to reach applicant documents.
type Application struct {
	BaseModel
	PostID      string            `gorm:"not null;index"`
	ApplicantID string            `gorm:"not null;index"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'submitted'"`
	Message     string            `gorm:"type:text"`

	Post      *Post                 `gorm:"foreignKey:PostID"`
	Snapshot  *ApplicationSnapshot  `gorm:"foreignKey:ApplicationID"`
	Documents []ApplicationDocument `gorm:"foreignKey:ApplicationID"`
}
