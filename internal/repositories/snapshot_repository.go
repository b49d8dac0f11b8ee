package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotExists   = errors.New("snapshot already exists for application")
)

type SnapshotRepository interface {
	// Create stores the snapshot. Exactly one snapshot may exist per
	// application; a second insert fails.
	Create(ctx context.Context, snapshot *models.ApplicationSnapshot) error
	FindByApplication(ctx context.Context, applicationID string) (*models.ApplicationSnapshot, error)
	// ListByInstitution returns every snapshot belonging to an
	// application on one of the institution's posts. The scoping happens
	// in SQL so callers never see other institutions' snapshots.
	ListByInstitution(ctx context.Context, institutionID string) ([]models.ApplicationSnapshot, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *models.ApplicationSnapshot) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ApplicationSnapshot{}).
		Where("application_id = ?", snapshot.ApplicationID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSnapshotExists
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepository) FindByApplication(ctx context.Context, applicationID string) (*models.ApplicationSnapshot, error) {
	var snapshot models.ApplicationSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) ListByInstitution(ctx context.Context, institutionID string) ([]models.ApplicationSnapshot, error) {
	var snapshots []models.ApplicationSnapshot
	err := r.db.WithContext(ctx).
		Joins("JOIN applications a ON a.id = application_snapshots.application_id").
		Joins("JOIN posts p ON p.id = a.post_id").
		Where("p.institution_id = ?", institutionID).
		Find(&snapshots).Error
	return snapshots, err
}
