package models

// ApplicantDocument is a document uploaded to an applicant's profile
// (transcript, CV, certificate). Rows are soft-deleted via Active=false
// and never hard-deleted once a snapshot references them, so snapshot
// access survives profile edits.
type ApplicantDocument struct {
	BaseModel
	ApplicantID string `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Path        string `gorm:"not null;index"` // canonical storage key
	MimeType    string
	Size        int64
	Active      bool `gorm:"default:true;index"`
}

// ApplicationDocument is a file uploaded as part of one specific
// application (at submission or in response to an update request). It is
// scoped to that application, not to the applicant's profile.
type ApplicationDocument struct {
	BaseModel
	ApplicationID string `gorm:"not null;index"`
	UploaderID    string `gorm:"not null;index"`
	Name          string `gorm:"not null"`
	Path          string `gorm:"not null;index"` // canonical storage key
	MimeType      string
	Size          int64
}
