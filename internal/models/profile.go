package models

// ApplicantProfile holds the public-facing data of an applicant account.
type ApplicantProfile struct {
	BaseModel
	UserID    string `gorm:"not null;uniqueIndex"`
	FullName  string `gorm:"not null"`
	Bio       string `gorm:"type:text"`
	Country   string
	AvatarURL string
}

// InstitutionProfile holds the public-facing data of an institution account.
// Posts and application scoping reference the profile ID, not the user ID.
type InstitutionProfile struct {
	BaseModel
	UserID       string `gorm:"not null;uniqueIndex"`
	Name         string `gorm:"not null"`
	Website      string
	Country      string
	LogoURL      string
	ContactEmail string
}
