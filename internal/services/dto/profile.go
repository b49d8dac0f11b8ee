package dto

type UpdateApplicantProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Country  *string `json:"country" validate:"omitempty,max=100"`
}

type UpdateInstitutionProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=200"`
	Website      *string `json:"website" validate:"omitempty,url"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
}

type ApplicantProfileResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio,omitempty"`
	Country   string `json:"country,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type InstitutionProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Website      string `json:"website,omitempty"`
	Country      string `json:"country,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}
