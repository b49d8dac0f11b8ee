package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/auth"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		emailProvider:    emailProvider,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	if !auth.RegistrableRole(req.Role) {
		return apperrors.ErrInvalidUserRole
	}
	if err := validateRegistration(req); err != nil {
		return err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              req.Role,
		Status:            models.UserStatusPending,
		VerificationToken: randomToken(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.createProfile(ctx, user, req); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendVerification(user.Email, user.VerificationToken); err != nil {
		logger.WithError(err).Warn("failed to send verification email", "email", user.Email)
	}
	return nil
}

func validateRegistration(req *dto.RegisterRequest) error {
	switch req.Role {
	case models.UserRoleApplicant:
		if req.FullName == "" {
			return apperrors.NewBadRequestError("fullName is required for applicants")
		}
	case models.UserRoleInstitution:
		if req.InstitutionName == "" {
			return apperrors.NewBadRequestError("institutionName is required for institutions")
		}
	}
	return nil
}

func (s *authService) createProfile(ctx context.Context, user *models.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case models.UserRoleApplicant:
		return s.profileRepo.CreateApplicantProfile(ctx, &models.ApplicantProfile{
			UserID:   user.ID,
			FullName: req.FullName,
			Country:  req.Country,
		})
	case models.UserRoleInstitution:
		return s.profileRepo.CreateInstitutionProfile(ctx, &models.InstitutionProfile{
			UserID:       user.ID,
			Name:         req.InstitutionName,
			Website:      req.Website,
			Country:      req.Country,
			ContactEmail: user.Email,
		})
	}
	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(ctx, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the presented token is single use.
	if err := s.refreshTokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.DeleteByToken(ctx, refreshToken)
}

// issueTokens builds the access token with the institution profile id baked
// into the claims, so document authorization never needs a profile lookup
// per request.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	resp := &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}

	institutionID := ""
	switch user.Role {
	case models.UserRoleApplicant:
		profile, err := s.profileRepo.FindApplicantByUserID(ctx, user.ID)
		if err == nil {
			resp.Name = profile.FullName
			resp.Country = profile.Country
		}
	case models.UserRoleInstitution:
		profile, err := s.profileRepo.FindInstitutionByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		institutionID = profile.ID
		resp.Name = profile.Name
		resp.Country = profile.Country
		resp.InstitutionID = profile.ID
	}

	accessToken, err := s.tokens.Generate(user.ID, user.Role, institutionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         resp,
	}, nil
}

func randomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
