package services

import (
	"context"
	"errors"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type ProfileService interface {
	GetApplicant(ctx context.Context, userID string) (*dto.ApplicantProfileResponse, error)
	GetInstitution(ctx context.Context, profileID string) (*dto.InstitutionProfileResponse, error)
	UpdateApplicant(ctx context.Context, userID string, req *dto.UpdateApplicantProfileRequest) (*dto.ApplicantProfileResponse, error)
	UpdateInstitution(ctx context.Context, userID string, req *dto.UpdateInstitutionProfileRequest) (*dto.InstitutionProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetApplicant(ctx context.Context, userID string) (*dto.ApplicantProfileResponse, error) {
	profile, err := s.findApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return applicantProfileResponse(profile), nil
}

func (s *profileService) GetInstitution(ctx context.Context, profileID string) (*dto.InstitutionProfileResponse, error) {
	profile, err := s.profileRepo.FindInstitutionByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return institutionProfileResponse(profile), nil
}

func (s *profileService) UpdateApplicant(ctx context.Context, userID string, req *dto.UpdateApplicantProfileRequest) (*dto.ApplicantProfileResponse, error) {
	profile, err := s.findApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}

	if err := s.profileRepo.UpdateApplicantProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicantProfileResponse(profile), nil
}

func (s *profileService) UpdateInstitution(ctx context.Context, userID string, req *dto.UpdateInstitutionProfileRequest) (*dto.InstitutionProfileResponse, error) {
	profile, err := s.profileRepo.FindInstitutionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}
	if req.ContactEmail != nil {
		profile.ContactEmail = *req.ContactEmail
	}

	if err := s.profileRepo.UpdateInstitutionProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return institutionProfileResponse(profile), nil
}

func (s *profileService) findApplicant(ctx context.Context, userID string) (*models.ApplicantProfile, error) {
	profile, err := s.profileRepo.FindApplicantByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func applicantProfileResponse(p *models.ApplicantProfile) *dto.ApplicantProfileResponse {
	return &dto.ApplicantProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Bio:       p.Bio,
		Country:   p.Country,
		AvatarURL: p.AvatarURL,
	}
}

func institutionProfileResponse(p *models.InstitutionProfile) *dto.InstitutionProfileResponse {
	return &dto.InstitutionProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Website:      p.Website,
		Country:      p.Country,
		LogoURL:      p.LogoURL,
		ContactEmail: p.ContactEmail,
	}
}
