package dto

import (
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=applicant institution"`

	// Applicant fields
	FullName string `json:"fullName"`

	// Institution fields
	InstitutionName string `json:"institutionName"`
	Website         string `json:"website"`

	Country string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type UserResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	Name          string          `json:"name"`
	Country       string          `json:"country,omitempty"`
	InstitutionID string          `json:"institutionId,omitempty"`
}

type LoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}
