package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateApplicantProfile(ctx context.Context, profile *models.ApplicantProfile) error
	CreateInstitutionProfile(ctx context.Context, profile *models.InstitutionProfile) error
	FindApplicantByUserID(ctx context.Context, userID string) (*models.ApplicantProfile, error)
	FindInstitutionByUserID(ctx context.Context, userID string) (*models.InstitutionProfile, error)
	FindInstitutionByID(ctx context.Context, id string) (*models.InstitutionProfile, error)
	UpdateApplicantProfile(ctx context.Context, profile *models.ApplicantProfile) error
	UpdateInstitutionProfile(ctx context.Context, profile *models.InstitutionProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateApplicantProfile(ctx context.Context, profile *models.ApplicantProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) CreateInstitutionProfile(ctx context.Context, profile *models.InstitutionProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindApplicantByUserID(ctx context.Context, userID string) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindInstitutionByUserID(ctx context.Context, userID string) (*models.InstitutionProfile, error) {
	var profile models.InstitutionProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindInstitutionByID(ctx context.Context, id string) (*models.InstitutionProfile, error) {
	var profile models.InstitutionProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateApplicantProfile(ctx context.Context, profile *models.ApplicantProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) UpdateInstitutionProfile(ctx context.Context, profile *models.InstitutionProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
